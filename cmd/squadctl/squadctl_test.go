package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/dwrs/internal/app"
)

const (
	catalogueFile = "../../configs/definitions.yaml"
	rosterFile    = "../../configs/players.example.yaml"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--definitions", catalogueFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRolesCommand(t *testing.T) {
	Convey("Given the roles command", t, func() {
		out, err := execute("roles")

		Convey("It lists roles and tactics", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "GK-D")
			So(out, ShouldContainSubstring, "4-2-3-1")
		})
	})
}

func TestScoreCommand(t *testing.T) {
	Convey("Given the score command", t, func() {
		Convey("It prints a table for every player", func() {
			out, err := execute("score", "-p", rosterFile, "AF-A", "GK-D")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Dario Feltri")
			So(out, ShouldContainSubstring, "40.1")
		})

		Convey("It restricts to requested ids in JSON", func() {
			out, err := execute("score", "-p", rosterFile, "--json", "--id", "p01", "GK-D")
			So(err, ShouldBeNil)
			var rows []scoreRow
			So(json.Unmarshal([]byte(out), &rows), ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
			So(rows[0].Scores[0].Normalized, ShouldAlmostEqual, 61.21, 0.01)
		})

		Convey("It requires a players file", func() {
			_, err := execute("score", "AF-A")
			So(err, ShouldNotBeNil)
		})

		Convey("It fails on unknown roles", func() {
			_, err := execute("score", "-p", rosterFile, "XX-Y")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestAssignCommand(t *testing.T) {
	Convey("Given the assign command", t, func() {
		Convey("It prints both lineups and the surplus", func() {
			out, err := execute("assign", "-p", rosterFile, "4-4-2")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "== 4-4-2 ==")
			So(out, ShouldContainSubstring, "Starting XI")
			So(out, ShouldContainSubstring, "B-team")
			So(out, ShouldContainSubstring, "Surplus")
		})

		Convey("It compares several tactics as JSON", func() {
			out, err := execute("assign", "-p", rosterFile, "--json", "--max-age", "21", "4-4-2", "4-3-3")
			So(err, ShouldBeNil)
			var cmp []service.Comparison
			So(json.Unmarshal([]byte(out), &cmp), ShouldBeNil)
			So(cmp, ShouldHaveLength, 2)
			So(cmp[0].Gaps, ShouldBeGreaterThan, 0)
		})

		Convey("It rejects a negative age limit", func() {
			_, err := execute("assign", "-p", rosterFile, "--max-age", "-1", "4-4-2")
			So(err, ShouldNotBeNil)
		})
	})
}
