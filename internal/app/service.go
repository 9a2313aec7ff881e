// Package service wires the scoring and assignment engines to the roster and
// exposes the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/dwrs/internal/adapters/definitions"
	"github.com/okian/dwrs/internal/adapters/repository"
	"github.com/okian/dwrs/internal/adapters/worker"
	"github.com/okian/dwrs/internal/config"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/scoring"
	"github.com/okian/dwrs/internal/domain/squad"
	"github.com/okian/dwrs/internal/domain/types"
	"github.com/okian/dwrs/pkg/logger"
	"github.com/okian/dwrs/pkg/metrics"
)

// Service owns the active snapshot, the roster and the matrix worker pool.
type Service struct {
	mu sync.RWMutex

	snapshot atomic.Pointer[Snapshot]
	version  atomic.Uint64
	cache    *scoring.BenchmarkCache
	roster   repository.Store
	pool     *worker.Pool

	matrixWorkers int

	started bool

	assignments atomic.Int64
	scores      atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoster replaces the default in-memory roster.
func WithRoster(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.roster = store
		}
	}
}

// WithMatrixWorkers sets the size of the matrix worker pool.
func WithMatrixWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.matrixWorkers = n
		}
	}
}

// New constructs a service with an initial snapshot built from cfg and cat.
func New(cfg *config.Config, cat *definitions.Catalogue, opts ...Option) (*Service, error) {
	s := &Service{
		cache:         scoring.NewBenchmarkCache(),
		matrixWorkers: runtime.NumCPU(),
		logger:        logger.Nop(),
	}
	if cfg != nil && cfg.MatrixWorkers > 0 {
		s.matrixWorkers = cfg.MatrixWorkers
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roster == nil {
		s.roster = repository.NewMemoryStore()
	}
	if err := s.Reload(context.Background(), cfg, cat); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the matrix worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.pool = worker.NewPool(s.matrixWorkers, worker.WithName("matrix"), worker.WithLogger(s.logger))
	s.pool.Start(ctx)
	s.started = true
	s.logger.Info(ctx, "dwrs service started",
		logger.Int("matrix_workers", s.matrixWorkers),
		logger.String("snapshot", s.snapshot.Load().String()),
	)
	return nil
}

// Stop drains the worker pool.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "matrix pool shutdown", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "dwrs service stopped")
}

// Reload builds a new snapshot and swaps it in atomically. On error the
// current snapshot stays active.
func (s *Service) Reload(ctx context.Context, cfg *config.Config, cat *definitions.Catalogue) error {
	if cfg == nil {
		cfg = config.New(ctx)
	}
	snap, err := BuildSnapshot(cfg, cat, s.cache, s.logger)
	if err != nil {
		metrics.RecordSnapshotReload("error")
		s.logger.Error(ctx, "settings rejected", logger.Error(err))
		return err
	}
	snap.Version = s.version.Add(1)
	s.snapshot.Store(snap)
	metrics.RecordSnapshotReload("ok")
	s.logger.Info(ctx, "settings loaded", logger.String("snapshot", snap.String()))
	return nil
}

// Snapshot returns the active snapshot.
func (s *Service) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Roster exposes the player store.
func (s *Service) Roster() repository.Store {
	return s.roster
}

// Roles returns every role definition sorted by name.
func (s *Service) Roles() []*role.Definition {
	snap := s.snapshot.Load()
	names := snap.Roles.Names()
	out := make([]*role.Definition, 0, len(names))
	for _, n := range names {
		d, err := snap.Roles.Lookup(n)
		if err == nil {
			out = append(out, d)
		}
	}
	return out
}

// Tactics returns every tactic sorted by name.
func (s *Service) Tactics() []role.Tactic {
	snap := s.snapshot.Load()
	names := snap.Tactics.Names()
	out := make([]role.Tactic, 0, len(names))
	for _, n := range names {
		t, err := snap.Tactics.Lookup(n)
		if err == nil {
			out = append(out, t)
		}
	}
	return out
}

// AddPlayers stores players in the roster.
func (s *Service) AddPlayers(ctx context.Context, players ...model.Player) ([]string, error) {
	return s.roster.Upsert(ctx, players...)
}

// Score rates one player for one role.
func (s *Service) Score(ctx context.Context, p *model.Player, roleName string) (model.ScoreResult, error) {
	if p == nil {
		return model.ScoreResult{}, ErrPlayerInput
	}
	snap := s.snapshot.Load()
	def, err := snap.Roles.Lookup(roleName)
	if err != nil {
		return model.ScoreResult{}, err
	}
	res, err := snap.Calculator.Score(p, def)
	if err != nil {
		return model.ScoreResult{}, err
	}
	s.scores.Add(1)
	s.logger.Debug(ctx, "player scored",
		logger.String("player", p.ID),
		logger.String("role", roleName),
		logger.Float64("normalized", res.Normalized),
	)
	return res, nil
}

// ScoreByID rates a stored player for one role.
func (s *Service) ScoreByID(ctx context.Context, playerID, roleName string) (model.ScoreResult, error) {
	p, err := s.roster.Get(ctx, playerID)
	if err != nil {
		return model.ScoreResult{}, err
	}
	return s.Score(ctx, &p, roleName)
}

// Assign runs the solver for a named tactic over the filtered roster.
func (s *Service) Assign(ctx context.Context, tacticName string, f repository.Filter) (squad.Result, error) {
	pool, err := s.roster.Pool(ctx, f)
	if err != nil {
		return squad.Result{}, err
	}
	return s.AssignPool(ctx, tacticName, pool, f.MaxAge)
}

// AssignPool runs the solver for a named tactic over an explicit pool.
func (s *Service) AssignPool(ctx context.Context, tacticName string, pool []model.Player, maxAge int) (squad.Result, error) {
	snap := s.snapshot.Load()
	tactic, err := snap.Tactics.Lookup(tacticName)
	if err != nil {
		return squad.Result{}, err
	}
	opts := snap.Options
	opts.MaxAge = maxAge
	res, err := snap.Solver.Assign(ctx, tactic, pool, opts)
	if err != nil {
		return squad.Result{}, err
	}
	s.assignments.Add(1)
	return res, nil
}

// Comparison is one tactic's outcome within Compare.
type Comparison struct {
	Tactic     string       `json:"tactic"`
	XITotal    float64      `json:"xi_total"`
	BTeamTotal float64      `json:"b_team_total"`
	Gaps       int          `json:"gaps"`
	Result     squad.Result `json:"result"`
}

// Compare assigns the same pool to several tactics concurrently. Results
// follow the order of tacticNames. Any configuration error aborts the batch.
func (s *Service) Compare(ctx context.Context, tacticNames []string, f repository.Filter) ([]Comparison, error) {
	if len(tacticNames) == 0 {
		return nil, ErrNoTactics
	}
	pool, err := s.roster.Pool(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(tacticNames))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range tacticNames {
		i, name := i, name
		g.Go(func() error {
			// The pool is shared read-only between runs.
			res, err := s.AssignPool(gctx, name, pool, f.MaxAge)
			if err != nil {
				return fmt.Errorf("tactic %q: %w", name, err)
			}
			out[i] = Comparison{
				Tactic:     name,
				XITotal:    res.StartingXI.Total(),
				BTeamTotal: res.BTeam.Total(),
				Gaps:       len(res.StartingXI.Gaps()),
				Result:     res,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MatrixRow holds one player's scores across the requested roles. Roles the
// player cannot be scored for appear in Errors instead of Scores.
type MatrixRow struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	Scores   map[string]float64 `json:"scores"`
	BestRole string             `json:"best_role,omitempty"`
	Errors   map[string]string  `json:"errors,omitempty"`
}

// Matrix is the player x role score table.
type Matrix struct {
	Roles []string    `json:"roles"`
	Rows  []MatrixRow `json:"rows"`
}

// Matrix scores every player for every role on the worker pool. An empty
// role list means every known role. Unknown roles fail the whole request.
func (s *Service) Matrix(ctx context.Context, players []model.Player, roleNames []string) (Matrix, error) {
	s.mu.RLock()
	started, pool := s.started, s.pool
	s.mu.RUnlock()
	if !started {
		return Matrix{}, ErrNotStarted
	}

	snap := s.snapshot.Load()
	if len(roleNames) == 0 {
		roleNames = snap.Roles.Names()
	}
	defs := make([]*role.Definition, len(roleNames))
	for i, n := range roleNames {
		d, err := snap.Roles.Lookup(n)
		if err != nil {
			return Matrix{}, err
		}
		defs[i] = d
	}

	type cell struct {
		score float64
		err   error
	}
	cells := make([]cell, len(players)*len(defs))
	err := pool.Run(ctx, len(cells), func(_ context.Context, i int) {
		p, d := &players[i/len(defs)], defs[i%len(defs)]
		res, err := snap.Calculator.Score(p, d)
		cells[i] = cell{score: res.Normalized, err: err}
	})
	if err != nil {
		return Matrix{}, err
	}

	m := Matrix{Roles: append([]string(nil), roleNames...), Rows: make([]MatrixRow, len(players))}
	for pi := range players {
		row := MatrixRow{PlayerID: players[pi].ID, Name: players[pi].Name, Scores: make(map[string]float64, len(defs))}
		best := -1.0
		for ri, d := range defs {
			c := cells[pi*len(defs)+ri]
			if c.err != nil {
				if !errors.Is(c.err, types.ErrValidation) {
					return Matrix{}, c.err
				}
				metrics.RecordMatrixCellFailure()
				if row.Errors == nil {
					row.Errors = make(map[string]string)
				}
				row.Errors[d.Name] = c.err.Error()
				continue
			}
			row.Scores[d.Name] = c.score
			if c.score > best {
				best, row.BestRole = c.score, d.Name
			}
		}
		m.Rows[pi] = row
	}
	s.scores.Add(int64(len(cells)))
	return m, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	snap := s.snapshot.Load()
	players := s.roster.Count(ctx)
	metrics.UpdateRosterSize(players)

	return map[string]interface{}{
		"started":           s.started,
		"matrixWorkers":     s.matrixWorkers,
		"players":           players,
		"roles":             snap.Roles.Len(),
		"tactics":           len(snap.Tactics.Names()),
		"snapshotVersion":   snap.Version,
		"settingsHash":      fmt.Sprintf("%x", snap.Settings.Fingerprint()),
		"benchmarksCached":  s.cache.Len(),
		"assignmentsServed": s.assignments.Load(),
		"scoresComputed":    s.scores.Load(),
	}
}
