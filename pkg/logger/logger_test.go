package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized text logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Info lines carry fields and the caller", func() {
			Get().Info(ctx, "scored", String("role", "AF-A"), Float64("normalized", 68.5))
			So(buf.String(), ShouldContainSubstring, "msg=scored")
			So(buf.String(), ShouldContainSubstring, "role=AF-A")
			So(buf.String(), ShouldContainSubstring, "logger_test.go")
		})

		Convey("Debug is hidden until the level is lowered", func() {
			Get().Debug(ctx, "hidden")
			So(buf.String(), ShouldBeEmpty)

			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(ctx, "shown")
			So(buf.String(), ShouldContainSubstring, "shown")
		})

		Convey("Named loggers tag their lines", func() {
			Named("solver").Warn(ctx, "gap", Int("slot", 3))
			So(buf.String(), ShouldContainSubstring, "logger=solver")
			So(buf.String(), ShouldContainSubstring, "slot=3")
		})

		Convey("Unknown levels are rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
			So(SetLevelString("WARNING"), ShouldBeNil)
			Get().Info(ctx, "dropped")
			So(buf.String(), ShouldBeEmpty)
		})
	})

	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithJSON(true)), ShouldBeNil)

		Get().Error(ctx, "load failed", Error(errors.New("boom")), Bool("fatal", false))

		var line map[string]any
		So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
		So(line["msg"], ShouldEqual, "load failed")
		So(line["error"], ShouldEqual, "boom")
		So(line["fatal"], ShouldEqual, false)
	})

	Convey("The nop logger discards everything", t, func() {
		l := Nop().Named("x")
		So(func() { l.Info(ctx, "nothing") }, ShouldNotPanic)
	})
}
