// Package squad assigns players to the slots of a tactic: a Starting XI, a
// B-team from the remaining pool, per-slot depth and the ranked surplus.
package squad

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/scoring"
	"github.com/okian/dwrs/internal/domain/types"
	"github.com/okian/dwrs/pkg/logger"
	"github.com/okian/dwrs/pkg/metrics"
)

// Pass names used for logs and metrics.
const (
	PassStartingXI = "starting_xi"
	PassBTeam      = "b_team"
)

// Option applies a configuration option to the Solver.
type Option func(*Solver)

// WithLogger sets the solver logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// Solver runs greedy slot-order assignment. It keeps no state between runs
// and is safe for concurrent use when its scorer is.
type Solver struct {
	scorer   scoring.Scorer
	registry *role.Registry
	logger   logger.Logger
}

// NewSolver creates a solver resolving roles through reg.
func NewSolver(scorer scoring.Scorer, reg *role.Registry, opts ...Option) *Solver {
	s := &Solver{
		scorer:   scorer,
		registry: reg,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// candidate is one pool member with its per-role scores.
type candidate struct {
	index  int
	player *model.Player
	scores map[string]float64
}

type run struct {
	opts   Options
	tactic role.Tactic
	defs   []*role.Definition
	roles  []string
	pool   []*candidate
	taken  map[int]bool
}

// Assign fills the tactic twice from pool and ranks whoever is left.
// A tactic referencing an undefined role fails before any assignment; slots
// without an eligible candidate become gaps.
func (s *Solver) Assign(ctx context.Context, tactic role.Tactic, pool []model.Player, opts Options) (Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := tactic.Validate(s.registry); err != nil {
		return Result{}, err
	}

	r := &run{
		opts:   opts,
		tactic: tactic,
		defs:   make([]*role.Definition, len(tactic.Slots)),
		roles:  tactic.Roles(),
		taken:  make(map[int]bool),
	}
	for i, slot := range tactic.Slots {
		d, err := s.registry.Lookup(slot.Role)
		if err != nil {
			return Result{}, err
		}
		r.defs[i] = d
	}

	res := Result{Tactic: tactic.Name}
	rejected, err := s.score(r, pool)
	if err != nil {
		return Result{}, err
	}
	res.Rejected = rejected

	res.StartingXI = s.pass(ctx, r, PassStartingXI)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res.BTeam = s.pass(ctx, r, PassBTeam)
	res.Depth = r.depth()
	res.Surplus = r.surplus()

	metrics.RecordSurplusSize(len(res.Surplus))
	metrics.RecordAssignmentDuration(time.Since(start))
	s.logger.Debug(ctx, "assignment complete",
		logger.String("tactic", tactic.Name),
		logger.Int("pool", len(r.pool)),
		logger.Int("xi_gaps", len(res.StartingXI.Gaps())),
		logger.Int("b_gaps", len(res.BTeam.Gaps())),
		logger.Int("surplus", len(res.Surplus)),
		logger.Int("rejected", len(res.Rejected)),
	)
	return res, nil
}

// score computes the normalized score of every pool member for every tactic
// role. Validation failures make the pair ineligible; a player with no valid
// pair at all is rejected.
func (s *Solver) score(r *run, pool []model.Player) ([]Rejection, error) {
	var rejected []Rejection
	for i := range pool {
		p := &pool[i]
		if r.opts.MaxAge > 0 && p.Age > r.opts.MaxAge {
			continue
		}
		c := &candidate{index: i, player: p, scores: make(map[string]float64, len(r.roles))}
		var firstErr error
		for _, name := range r.roles {
			d, err := s.registry.Lookup(name)
			if err != nil {
				return nil, err
			}
			sr, err := s.scorer.Score(p, d)
			if err != nil {
				if !errors.Is(err, types.ErrValidation) {
					return nil, err
				}
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			c.scores[name] = sr.Normalized
		}
		if len(c.scores) == 0 && firstErr != nil {
			rejected = append(rejected, Rejection{PlayerID: p.ID, Reason: firstErr.Error()})
			continue
		}
		r.pool = append(r.pool, c)
	}
	return rejected, nil
}

type option struct {
	c        *candidate
	adjusted float64
	natural  bool
}

func (r *run) eligible(slot int) []option {
	s := r.tactic.Slots[slot]
	var out []option
	for _, c := range r.pool {
		if r.taken[c.index] || !c.player.CanPlay(s.Role) {
			continue
		}
		norm, ok := c.scores[s.Role]
		if !ok {
			continue
		}
		natural := c.player.IsNaturalIn(s.Position)
		adj := norm * r.opts.playingTimeWeight(c.player.PlayingTime)
		if natural {
			adj *= r.opts.NaturalPositionMultiplier
		}
		out = append(out, option{c: c, adjusted: adj, natural: natural})
	}
	return out
}

func (s *Solver) pass(ctx context.Context, r *run, name string) Lineup {
	lineup := make(Lineup, len(r.tactic.Slots))
	for i, slot := range r.tactic.Slots {
		pick := Pick{Slot: i, Position: slot.Position, Role: slot.Role}
		if o, footed, ok := r.choose(i); ok {
			r.taken[o.c.index] = true
			pick.PlayerID = o.c.player.ID
			pick.PlayerName = o.c.player.Name
			pick.Normalized = o.c.scores[slot.Role]
			pick.Adjusted = o.adjusted
			pick.Natural = o.natural
			if footed {
				pick.Adjusted *= r.opts.FootNudge
				pick.FootTieBreak = true
			}
		}
		lineup[i] = pick
	}
	gaps := len(lineup.Gaps())
	metrics.RecordAssignmentPass(name, gaps)
	if gaps > 0 {
		s.logger.Debug(ctx, "lineup has gaps",
			logger.String("tactic", r.tactic.Name),
			logger.String("pass", name),
			logger.Any("slots", lineup.Gaps()),
		)
	}
	return lineup
}

// choose picks the best candidate for a slot. Candidates less than
// TieEpsilon behind the leader are tied; on a flank slot a tied candidate whose foot matches
// the side wins. Anything still tied goes to pool order.
func (r *run) choose(slot int) (option, bool, bool) {
	opts := r.eligible(slot)
	if len(opts) == 0 {
		return option{}, false, false
	}
	leader := opts[0]
	for _, o := range opts[1:] {
		if o.adjusted > leader.adjusted {
			leader = o
		}
	}

	side := r.tactic.Slots[slot].Position.Side()
	if side == types.SideNone {
		return leader, false, true
	}
	var group []option
	for _, o := range opts {
		if leader.adjusted-o.adjusted < r.opts.TieEpsilon {
			group = append(group, o)
		}
	}
	if len(group) < 2 {
		return leader, false, true
	}
	var best *option
	for i := range group {
		o := &group[i]
		if !o.c.player.PreferredFoot.Matches(side) {
			continue
		}
		if best == nil || o.adjusted > best.adjusted {
			best = o
		}
	}
	if best == nil {
		return leader, false, true
	}
	return *best, true, true
}

func (r *run) depth() []DepthSlot {
	out := make([]DepthSlot, 0, len(r.tactic.Slots))
	for i, slot := range r.tactic.Slots {
		ds := DepthSlot{Slot: i, Position: slot.Position, Role: slot.Role}
		keeper := r.defs[i].Goalkeeper || slot.Position.IsGoalkeeper()
		// Keeper slots list natural keepers only; outfield slots never do.
		var opts []option
		for _, o := range r.eligible(i) {
			if o.c.player.IsGoalkeeper() == keeper {
				opts = append(opts, o)
			}
		}
		sort.SliceStable(opts, func(a, b int) bool {
			return opts[a].c.scores[slot.Role] > opts[b].c.scores[slot.Role]
		})
		n := r.opts.depthFor(keeper)
		if n > len(opts) {
			n = len(opts)
		}
		for _, o := range opts[:n] {
			ds.Candidates = append(ds.Candidates, Candidate{
				PlayerID:   o.c.player.ID,
				PlayerName: o.c.player.Name,
				Normalized: o.c.scores[slot.Role],
			})
		}
		out = append(out, ds)
	}
	return out
}

func (r *run) surplus() []SurplusEntry {
	out := make([]SurplusEntry, 0, len(r.pool))
	for _, c := range r.pool {
		if r.taken[c.index] {
			continue
		}
		e := SurplusEntry{PlayerID: c.player.ID, PlayerName: c.player.Name, Age: c.player.Age}
		first := true
		for _, name := range r.roles {
			v, ok := c.scores[name]
			if !ok {
				continue
			}
			if first || v > e.Normalized {
				e.BestRole, e.Normalized = name, v
				first = false
			}
		}
		e.Youth = c.player.Age > 0 && c.player.Age <= r.opts.youthAge(c.player.IsGoalkeeper())
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Normalized > out[j].Normalized
	})
	return out
}
