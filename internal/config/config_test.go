package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dwrs/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DefinitionsFile, convey.ShouldEqual, "configs/definitions.yaml")
			convey.So(cfg.MatrixWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.KeyMultiplier, convey.ShouldEqual, 1.5)
			convey.So(cfg.PreferableMultiplier, convey.ShouldEqual, 1.2)
			convey.So(cfg.NaturalPositionMultiplier, convey.ShouldEqual, 1.05)
			convey.So(cfg.TieEpsilon, convey.ShouldEqual, 0.1)
			convey.So(cfg.FootNudge, convey.ShouldEqual, 1.001)
			convey.So(cfg.YouthAgeOutfield, convey.ShouldEqual, 21)
			convey.So(cfg.YouthAgeGoalkeeper, convey.ShouldEqual, 23)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given an invalid config", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":           func(c *config.Config) { c.Addr = "" },
			"preferable below one": func(c *config.Config) { c.PreferableMultiplier = 0.8 },
			"key below preferable": func(c *config.Config) { c.KeyMultiplier = 1.1 },
			"natural below one":    func(c *config.Config) { c.NaturalPositionMultiplier = 0.5 },
			"negative epsilon":     func(c *config.Config) { c.TieEpsilon = -0.1 },
			"nudge below one":      func(c *config.Config) { c.FootNudge = 0.99 },
			"no workers":           func(c *config.Config) { c.MatrixWorkers = 0 },
			"negative weight":      func(c *config.Config) { c.Weights = map[string]float64{"good": -1} },
		}
		for name, mutate := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				cfg := config.New(context.Background())
				mutate(cfg)
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
