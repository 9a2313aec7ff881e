package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dwrs/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.KeyMultiplier, convey.ShouldEqual, 1.5)
				convey.So(cfg.Weights, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("DWRS_ADDR", ":8080")
			t.Setenv("DWRS_KEY_MULTIPLIER", "1.75")
			t.Setenv("DWRS_MATRIX_WORKERS", "3")
			t.Setenv("DWRS_WEIGHTS__GOOD", "2.5")
			t.Setenv("DWRS_GK_WEIGHTS__TOP_IMPORTANCE", "12")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.KeyMultiplier, convey.ShouldEqual, 1.75)
				convey.So(cfg.MatrixWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.Weights["good"], convey.ShouldEqual, 2.5)
				convey.So(cfg.GKWeights["top_importance"], convey.ShouldEqual, 12.0)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
log_level: debug
definitions_file: /etc/dwrs/definitions.yaml
tie_epsilon: 0.25
weights:
  extremely_important: 9
playing_time_weights:
  Star Player: 1.2
  Squad Player: 1.0
`)
			t.Setenv("DWRS_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefinitionsFile, convey.ShouldEqual, "/etc/dwrs/definitions.yaml")
				convey.So(cfg.TieEpsilon, convey.ShouldEqual, 0.25)
				convey.So(cfg.Weights["extremely_important"], convey.ShouldEqual, 9.0)
				convey.So(cfg.PlayingTimeWeights["Star Player"], convey.ShouldEqual, 1.2)
			})

			convey.Convey("Then env vars still win over the file", func() {
				t.Setenv("DWRS_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config file is missing", func() {
			t.Setenv("DWRS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
			_, err := config.Load(ctx)

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the merged config is invalid", func() {
			t.Setenv("DWRS_PREFERABLE_MULTIPLIER", "2.0")
			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
