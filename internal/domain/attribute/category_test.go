package attribute_test

import (
	"errors"
	"testing"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultPartitions(t *testing.T) {
	Convey("Given the default partitions", t, func() {
		outfield := attribute.DefaultOutfield()
		gk := attribute.DefaultGoalkeeper()

		Convey("Then every outfield attribute should belong to exactly one category", func() {
			total := 0
			for _, c := range outfield.Categories() {
				total += len(c.Attributes)
			}
			So(total, ShouldEqual, len(outfield.Attributes()))
			So(total, ShouldEqual, 25)

			cat, ok := outfield.CategoryOf(attribute.Pace)
			So(ok, ShouldBeTrue)
			So(cat.Name, ShouldEqual, "Extremely Important")
			So(cat.Weight, ShouldEqual, 8.0)
		})

		Convey("Then the goalkeeper partition should be distinct", func() {
			So(gk.Name(), ShouldEqual, attribute.PartitionGoalkeeper)
			So(len(gk.Attributes()), ShouldEqual, 6)
			_, ok := gk.CategoryOf(attribute.Pace)
			So(ok, ShouldBeFalse)
		})

		Convey("Then neither default should be degenerate", func() {
			So(outfield.Degenerate(), ShouldBeFalse)
			So(gk.Degenerate(), ShouldBeFalse)
		})
	})
}

func TestNewPartitionValidation(t *testing.T) {
	Convey("Given malformed category layouts", t, func() {
		Convey("When a weight is negative", func() {
			_, err := attribute.NewPartition("outfield", []attribute.Category{
				{Name: "A", Weight: -1, Attributes: []attribute.Name{attribute.Pace}},
			})
			Convey("Then it should be a configuration error", func() {
				So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "negative")
			})
		})

		Convey("When an attribute appears in two categories", func() {
			_, err := attribute.NewPartition("outfield", []attribute.Category{
				{Name: "A", Weight: 1, Attributes: []attribute.Name{attribute.Pace}},
				{Name: "B", Weight: 1, Attributes: []attribute.Name{attribute.Pace}},
			})
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "already belongs")
		})

		Convey("When an attribute is unknown", func() {
			_, err := attribute.NewPartition("outfield", []attribute.Category{
				{Name: "A", Weight: 1, Attributes: []attribute.Name{"Telepathy"}},
			})
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})

		Convey("When a category is empty", func() {
			_, err := attribute.NewPartition("outfield", []attribute.Category{{Name: "A", Weight: 1}})
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})

		Convey("When there are no categories", func() {
			_, err := attribute.NewPartition("outfield", nil)
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})
	})
}

func TestWithWeights(t *testing.T) {
	Convey("Given the default outfield partition", t, func() {
		base := attribute.DefaultOutfield()

		Convey("When overriding weights by snake_case key and by name", func() {
			p, err := base.WithWeights(map[string]float64{"extremely_important": 9, "Good": 0})
			So(err, ShouldBeNil)

			Convey("Then the copy should carry the new weights and the base should be untouched", func() {
				cat, _ := p.CategoryOf(attribute.Pace)
				So(cat.Weight, ShouldEqual, 9.0)
				cat, _ = p.CategoryOf(attribute.Stamina)
				So(cat.Weight, ShouldEqual, 0.0)
				cat, _ = base.CategoryOf(attribute.Pace)
				So(cat.Weight, ShouldEqual, 8.0)
			})
		})

		Convey("When overriding an unknown category", func() {
			_, err := base.WithWeights(map[string]float64{"legendary": 1})
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})

		Convey("When every weight is zeroed", func() {
			p, err := base.WithWeights(map[string]float64{
				"extremely_important": 0, "important": 0, "good": 0, "decent": 0, "almost_irrelevant": 0,
			})
			So(err, ShouldBeNil)
			So(p.Degenerate(), ShouldBeTrue)
		})
	})
}
