package squad

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/scoring"
	"github.com/okian/dwrs/internal/domain/types"
)

// fixedScorer returns preset normalized scores keyed by "id/role" or "id".
// Players without an entry fail validation.
type fixedScorer map[string]float64

func (f fixedScorer) Score(p *model.Player, d *role.Definition) (model.ScoreResult, error) {
	v, ok := f[p.ID+"/"+d.Name]
	if !ok {
		v, ok = f[p.ID]
	}
	if !ok {
		return model.ScoreResult{}, &types.ValidationError{PlayerID: p.ID, Partition: "test", Missing: []string{"all"}}
	}
	return model.ScoreResult{PlayerID: p.ID, Role: d.Name, Absolute: v, Normalized: v}, nil
}

type failingScorer struct{}

func (failingScorer) Score(*model.Player, *role.Definition) (model.ScoreResult, error) {
	return model.ScoreResult{}, errors.New("boom")
}

func testRegistry() *role.Registry {
	reg, err := role.NewRegistry([]role.Definition{
		{Name: "GK-D", Positions: []types.Position{"GK"}, Key: []attribute.Name{attribute.Reflexes}},
		{Name: "FB-S", Positions: []types.Position{"DL", "DR"}, Key: []attribute.Name{attribute.Pace}},
		{Name: "CB-D", Positions: []types.Position{"DCL", "DC", "DCR"}, Key: []attribute.Name{attribute.Marking}},
		{Name: "ST-A", Positions: []types.Position{"STC"}, Key: []attribute.Name{attribute.Finishing}},
	})
	if err != nil {
		panic(err)
	}
	return reg
}

func testTactic() role.Tactic {
	return role.Tactic{Name: "back four", Slots: []role.Slot{
		{Position: "GK", Role: "GK-D"},
		{Position: "DL", Role: "FB-S"},
		{Position: "DCL", Role: "CB-D"},
		{Position: "DCR", Role: "CB-D"},
		{Position: "DR", Role: "FB-S"},
		{Position: "STC", Role: "ST-A"},
	}}
}

func player(id string, foot types.Foot, naturals ...types.Position) model.Player {
	return model.Player{ID: id, Name: "Player " + id, PreferredFoot: foot, NaturalPositions: naturals}
}

func TestOptions(t *testing.T) {
	Convey("Given assignment options", t, func() {
		Convey("Defaults validate", func() {
			o := DefaultOptions()
			So(o.Validate(), ShouldBeNil)
			So(o.NaturalPositionMultiplier, ShouldEqual, 1.05)
			So(o.TieEpsilon, ShouldEqual, 0.1)
			So(o.FootNudge, ShouldEqual, 1.001)
		})

		Convey("Bad values are configuration errors", func() {
			for _, mutate := range []func(*Options){
				func(o *Options) { o.NaturalPositionMultiplier = 0.9 },
				func(o *Options) { o.TieEpsilon = -1 },
				func(o *Options) { o.FootNudge = 0.5 },
				func(o *Options) { o.MaxAge = -3 },
				func(o *Options) { o.PlayingTimeWeights = map[string]float64{"Star Player": -1} },
			} {
				o := DefaultOptions()
				mutate(&o)
				So(errors.Is(o.Validate(), types.ErrConfiguration), ShouldBeTrue)
			}
		})
	})
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	Convey("Given a solver and a six-slot tactic", t, func() {
		reg := testRegistry()
		tactic := testTactic()

		Convey("An empty pool yields only gaps", func() {
			s := NewSolver(fixedScorer{}, reg)
			res, err := s.Assign(ctx, tactic, nil, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI, ShouldHaveLength, 6)
			So(res.StartingXI.Gaps(), ShouldResemble, []int{0, 1, 2, 3, 4, 5})
			So(res.BTeam.Gaps(), ShouldHaveLength, 6)
			So(res.Surplus, ShouldBeEmpty)
			So(res.StartingXI.Total(), ShouldEqual, 0.0)
		})

		Convey("An undefined role fails before assignment", func() {
			bad := testTactic()
			bad.Slots[5].Role = "NOPE"
			s := NewSolver(fixedScorer{"a": 50}, reg)
			_, err := s.Assign(ctx, bad, []model.Player{player("a", types.FootRight)}, DefaultOptions())
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Invalid options fail before assignment", func() {
			o := DefaultOptions()
			o.FootNudge = 0
			_, err := NewSolver(fixedScorer{}, reg).Assign(ctx, tactic, nil, o)
			So(errors.Is(err, types.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Scorer failures other than validation abort the run", func() {
			_, err := NewSolver(failingScorer{}, reg).Assign(ctx, tactic, []model.Player{player("a", types.FootLeft)}, DefaultOptions())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "boom")
		})

		Convey("A near tie on a left slot goes to the left-footed player", func() {
			pool := []model.Player{
				player("right", types.FootRight),
				player("left", types.FootLeft),
			}
			scores := fixedScorer{"right/FB-S": 80.05, "left/FB-S": 80.00}
			onlyDL := role.Tactic{Name: "dl", Slots: []role.Slot{{Position: "DL", Role: "FB-S"}}}

			res, err := NewSolver(scores, reg).Assign(ctx, onlyDL, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "left")
			So(res.StartingXI[0].FootTieBreak, ShouldBeTrue)
			So(res.StartingXI[0].Adjusted, ShouldAlmostEqual, 80.00*1.001, 1e-9)
			So(res.BTeam[0].PlayerID, ShouldEqual, "right")
		})

		Convey("A clear lead is not overturned by foot", func() {
			pool := []model.Player{
				player("right", types.FootRight),
				player("left", types.FootLeft),
			}
			scores := fixedScorer{"right/FB-S": 85, "left/FB-S": 80}
			onlyDL := role.Tactic{Name: "dl", Slots: []role.Slot{{Position: "DL", Role: "FB-S"}}}

			res, err := NewSolver(scores, reg).Assign(ctx, onlyDL, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "right")
			So(res.StartingXI[0].FootTieBreak, ShouldBeFalse)
		})

		Convey("A gap of exactly TieEpsilon is a clear lead", func() {
			pool := []model.Player{
				player("right", types.FootRight),
				player("left", types.FootLeft),
			}
			scores := fixedScorer{"right/FB-S": 80.5, "left/FB-S": 80.0}
			onlyDL := role.Tactic{Name: "dl", Slots: []role.Slot{{Position: "DL", Role: "FB-S"}}}
			opts := DefaultOptions()
			opts.TieEpsilon = 0.5

			res, err := NewSolver(scores, reg).Assign(ctx, onlyDL, pool, opts)
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "right")
			So(res.StartingXI[0].FootTieBreak, ShouldBeFalse)
			So(res.StartingXI[0].Adjusted, ShouldEqual, 80.5)
		})

		Convey("A zero TieEpsilon disables the foot tie-break", func() {
			pool := []model.Player{
				player("right", types.FootRight),
				player("left", types.FootLeft),
			}
			scores := fixedScorer{"right/FB-S": 80, "left/FB-S": 80}
			onlyDL := role.Tactic{Name: "dl", Slots: []role.Slot{{Position: "DL", Role: "FB-S"}}}
			opts := DefaultOptions()
			opts.TieEpsilon = 0

			res, err := NewSolver(scores, reg).Assign(ctx, onlyDL, pool, opts)
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "right")
			So(res.StartingXI[0].FootTieBreak, ShouldBeFalse)
		})

		Convey("Symmetric flank slots split a near tie by foot", func() {
			pool := []model.Player{
				player("right", types.FootRight),
				player("left", types.FootLeft),
			}
			scores := fixedScorer{"right/FB-S": 80.05, "left/FB-S": 80.00}
			flanks := role.Tactic{Name: "flanks", Slots: []role.Slot{
				{Position: "DL", Role: "FB-S"},
				{Position: "DR", Role: "FB-S"},
			}}

			res, err := NewSolver(scores, reg).Assign(ctx, flanks, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI.PlayerIDs(), ShouldResemble, []string{"left", "right"})
			So(res.StartingXI[0].FootTieBreak, ShouldBeTrue)
			So(res.StartingXI[1].FootTieBreak, ShouldBeFalse)
			So(res.BTeam.Gaps(), ShouldResemble, []int{0, 1})
			So(res.Surplus, ShouldBeEmpty)
		})

		Convey("Depth keeps keepers and outfielders apart", func() {
			pool := []model.Player{
				player("gk1", types.FootRight, "GK"),
				player("gk2", types.FootRight, "GK"),
				player("gk3", types.FootRight, "GK"),
				player("fb1", types.FootLeft, "DL"),
				player("fb2", types.FootLeft, "DL"),
				player("fb3", types.FootLeft, "DL"),
				player("fb4", types.FootLeft, "DL"),
			}
			scores := fixedScorer{
				"gk1/GK-D": 70, "gk2/GK-D": 60, "gk3/GK-D": 50,
				"gk2/FB-S": 76, "gk3/FB-S": 99,
				"fb2/GK-D": 65,
				"fb1/FB-S": 80, "fb2/FB-S": 75, "fb3/FB-S": 60, "fb4/FB-S": 55,
				"fb4/GK-D": 95,
			}
			shape := role.Tactic{Name: "gk-dl", Slots: []role.Slot{
				{Position: "GK", Role: "GK-D"},
				{Position: "DL", Role: "FB-S"},
			}}

			res, err := NewSolver(scores, reg).Assign(ctx, shape, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI.PlayerIDs(), ShouldResemble, []string{"fb4", "gk3"})
			So(res.BTeam.PlayerIDs(), ShouldResemble, []string{"gk1", "fb1"})

			ids := func(cs []Candidate) []string {
				var out []string
				for _, c := range cs {
					out = append(out, c.PlayerID)
				}
				return out
			}
			So(ids(res.Depth[0].Candidates), ShouldResemble, []string{"gk2"})
			So(ids(res.Depth[1].Candidates), ShouldResemble, []string{"fb2"})
		})

		Convey("Central slots ignore foot and keep pool order on ties", func() {
			pool := []model.Player{
				player("first", types.FootRight),
				player("second", types.FootLeft),
			}
			scores := fixedScorer{"first/CB-D": 70, "second/CB-D": 70}
			onlyDC := role.Tactic{Name: "dc", Slots: []role.Slot{{Position: "DC", Role: "CB-D"}}}

			res, err := NewSolver(scores, reg).Assign(ctx, onlyDC, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "first")
		})

		Convey("Natural position bonus can decide a slot", func() {
			pool := []model.Player{
				player("stranger", types.FootRight),
				player("native", types.FootRight, "STC"),
			}
			scores := fixedScorer{"stranger/ST-A": 72, "native/ST-A": 70}
			onlyST := role.Tactic{Name: "st", Slots: []role.Slot{{Position: "STC", Role: "ST-A"}}}

			res, err := NewSolver(scores, reg).Assign(ctx, onlyST, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "native")
			So(res.StartingXI[0].Natural, ShouldBeTrue)
			So(res.StartingXI[0].Adjusted, ShouldAlmostEqual, 73.5, 1e-9)
			So(res.StartingXI[0].Normalized, ShouldEqual, 70.0)
		})

		Convey("Playing time weights scale the selection score", func() {
			a := player("squad", types.FootRight)
			b := player("star", types.FootRight)
			b.PlayingTime = "Star Player"
			scores := fixedScorer{"squad/ST-A": 75, "star/ST-A": 70}
			onlyST := role.Tactic{Name: "st", Slots: []role.Slot{{Position: "STC", Role: "ST-A"}}}

			o := DefaultOptions()
			o.PlayingTimeWeights = map[string]float64{"Star Player": 1.2}
			res, err := NewSolver(scores, reg).Assign(ctx, onlyST, []model.Player{a, b}, o)
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "star")
		})

		Convey("Primary and assigned roles restrict eligibility", func() {
			striker := player("striker", types.FootRight)
			striker.PrimaryRole = "ST-A"
			keeper := player("keeper", types.FootRight)
			keeper.Roles = []string{"GK-D"}
			scores := fixedScorer{"striker": 90, "keeper": 60}

			res, err := NewSolver(scores, reg).Assign(ctx, tactic, []model.Player{striker, keeper}, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "keeper")
			So(res.StartingXI[5].PlayerID, ShouldEqual, "striker")
			So(res.StartingXI.Gaps(), ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("MaxAge filters the pool", func() {
			old := player("old", types.FootRight)
			old.Age = 30
			young := player("young", types.FootRight)
			young.Age = 18
			scores := fixedScorer{"old": 90, "young": 50}
			onlyST := role.Tactic{Name: "st", Slots: []role.Slot{{Position: "STC", Role: "ST-A"}}}

			o := DefaultOptions()
			o.MaxAge = 21
			res, err := NewSolver(scores, reg).Assign(ctx, onlyST, []model.Player{old, young}, o)
			So(err, ShouldBeNil)
			So(res.StartingXI[0].PlayerID, ShouldEqual, "young")
			So(res.Surplus, ShouldBeEmpty)
		})

		Convey("Players that cannot be scored are rejected", func() {
			pool := []model.Player{player("ok", types.FootRight), player("broken", types.FootRight)}
			res, err := NewSolver(fixedScorer{"ok": 60}, reg).Assign(ctx, tactic, pool, DefaultOptions())
			So(err, ShouldBeNil)
			So(res.Rejected, ShouldHaveLength, 1)
			So(res.Rejected[0].PlayerID, ShouldEqual, "broken")
			So(res.StartingXI.PlayerIDs(), ShouldResemble, []string{"ok"})
		})

		Convey("Given a pool larger than two lineups", func() {
			scores := fixedScorer{}
			var pool []model.Player
			for i := 0; i < 16; i++ {
				id := fmt.Sprintf("p%02d", i)
				p := player(id, types.FootEither)
				p.Age = 17 + i
				pool = append(pool, p)
				scores[id] = float64(40 + i)
			}
			gk := player("gk", types.FootRight, "GK")
			gk.Age = 22
			pool = append(pool, gk)
			scores["gk/GK-D"] = 30

			res, err := NewSolver(scores, reg).Assign(ctx, tactic, pool, DefaultOptions())
			So(err, ShouldBeNil)

			Convey("No player is picked twice across both lineups", func() {
				seen := map[string]bool{}
				for _, id := range append(res.StartingXI.PlayerIDs(), res.BTeam.PlayerIDs()...) {
					So(seen[id], ShouldBeFalse)
					seen[id] = true
				}
				So(seen, ShouldHaveLength, 12)
			})

			Convey("The Starting XI takes the strongest players first", func() {
				So(res.StartingXI[0].PlayerID, ShouldEqual, "p15")
				So(res.StartingXI.Gaps(), ShouldBeEmpty)
				So(res.StartingXI.Total(), ShouldBeGreaterThan, res.BTeam.Total())
			})

			Convey("Surplus holds everyone else, best first", func() {
				So(res.Surplus, ShouldHaveLength, 5)
				for i := 1; i < len(res.Surplus); i++ {
					So(res.Surplus[i-1].Normalized, ShouldBeGreaterThanOrEqualTo, res.Surplus[i].Normalized)
				}
				last := res.Surplus[len(res.Surplus)-1]
				So(last.PlayerID, ShouldEqual, "gk")
				So(last.BestRole, ShouldEqual, "GK-D")
			})

			Convey("Surplus splits by age with a higher goalkeeper threshold", func() {
				So(len(res.Youth())+len(res.Senior()), ShouldEqual, len(res.Surplus))
				for _, e := range res.Youth() {
					if e.PlayerID == "gk" {
						So(e.Age, ShouldBeLessThanOrEqualTo, DefaultYouthAgeGoalkeeper)
						continue
					}
					So(e.Age, ShouldBeLessThanOrEqualTo, DefaultYouthAgeOutfield)
				}
				So(res.Youth(), ShouldContain, res.Surplus[len(res.Surplus)-1])
			})

			Convey("Depth lists two keepers and one player elsewhere", func() {
				So(res.Depth, ShouldHaveLength, 6)
				So(res.Depth[0].Candidates, ShouldHaveLength, 1)
				So(res.Depth[0].Candidates[0].PlayerID, ShouldEqual, "gk")
				So(res.Depth[1].Candidates, ShouldHaveLength, 1)
				So(res.Depth[1].Candidates[0].PlayerID, ShouldEqual, res.Surplus[0].PlayerID)
			})

			Convey("Results are deterministic", func() {
				again, err := NewSolver(scores, reg).Assign(ctx, tactic, pool, DefaultOptions())
				So(err, ShouldBeNil)
				So(again, ShouldResemble, res)
			})
		})
	})

	Convey("Given the real calculator", t, func() {
		reg := testRegistry()
		calc := scoring.NewCalculator(scoring.DefaultSettings())
		s := NewSolver(calc, reg)

		strong := model.Uniform("strong", calc.Settings().Outfield().Attributes(), 15)
		weak := model.Uniform("weak", calc.Settings().Outfield().Attributes(), 8)
		onlyST := role.Tactic{Name: "st", Slots: []role.Slot{{Position: "STC", Role: "ST-A"}}}

		res, err := s.Assign(ctx, onlyST, []model.Player{weak, strong}, DefaultOptions())
		So(err, ShouldBeNil)
		So(res.StartingXI[0].PlayerID, ShouldEqual, "strong")
		So(res.BTeam[0].PlayerID, ShouldEqual, "weak")
		So(res.StartingXI[0].Normalized, ShouldBeBetween, 0.0, 100.0)
	})
}
