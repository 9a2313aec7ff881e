// Package api exposes the scoring and assignment service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/dwrs/internal/adapters/definitions"
	"github.com/okian/dwrs/internal/adapters/repository"
	"github.com/okian/dwrs/internal/adapters/worker"
	service "github.com/okian/dwrs/internal/app"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/squad"
	"github.com/okian/dwrs/internal/domain/types"
)

// maxBodyBytes caps request bodies; a full roster upload fits comfortably.
const maxBodyBytes = 4 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	StatsProvider
	CatalogueDependencies
	PlayerDependencies
	ScoreDependencies
	AssignDependencies
	MatrixDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogueHandler *CatalogueHandler
	playersHandler   *PlayersHandler
	scoreHandler     *ScoreHandler
	assignHandler    *AssignHandler
	matrixHandler    *MatrixHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		catalogueHandler: NewCatalogueHandler(deps),
		playersHandler:   NewPlayersHandler(deps),
		scoreHandler:     NewScoreHandler(deps),
		assignHandler:    NewAssignHandler(deps),
		matrixHandler:    NewMatrixHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roles", MetricsMiddleware(s.catalogueHandler.HandleRoles, "roles"))
	mux.HandleFunc("/tactics", MetricsMiddleware(s.catalogueHandler.HandleTactics, "tactics"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("/assign", MetricsMiddleware(s.assignHandler.HandleAssign, "assign"))
	mux.HandleFunc("/compare", MetricsMiddleware(s.assignHandler.HandleCompare, "compare"))
	mux.HandleFunc("/matrix", MetricsMiddleware(s.matrixHandler.HandleMatrix, "matrix"))
}

// Interfaces satisfied by *service.Service.
type (
	// CatalogueDependencies lists the configured roles and tactics.
	CatalogueDependencies interface {
		Roles() []*role.Definition
		Tactics() []role.Tactic
	}

	// PlayerDependencies reads and writes the roster.
	PlayerDependencies interface {
		AddPlayers(ctx context.Context, players ...model.Player) ([]string, error)
		Roster() repository.Store
	}

	// ScoreDependencies rates single players.
	ScoreDependencies interface {
		Score(ctx context.Context, p *model.Player, roleName string) (model.ScoreResult, error)
		ScoreByID(ctx context.Context, playerID, roleName string) (model.ScoreResult, error)
	}

	// AssignDependencies runs the squad solver.
	AssignDependencies interface {
		Assign(ctx context.Context, tacticName string, f repository.Filter) (squad.Result, error)
		Compare(ctx context.Context, tacticNames []string, f repository.Filter) ([]service.Comparison, error)
	}

	// MatrixDependencies builds player x role tables.
	MatrixDependencies interface {
		Roster() repository.Store
		Matrix(ctx context.Context, players []model.Player, roleNames []string) (service.Matrix, error)
	}
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an upstream error to its status code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	writeError(w, status, code, Wrap(op, err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPayloadTooBig):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, definitions.ErrInvalidPlayer),
		errors.Is(err, repository.ErrInvalidPlayer),
		errors.Is(err, service.ErrPlayerInput),
		errors.Is(err, service.ErrNoTactics):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, types.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, types.ErrConfiguration):
		return http.StatusUnprocessableEntity, "configuration_error"
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, worker.ErrNotStarted),
		errors.Is(err, worker.ErrStopped):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON reads a single JSON document from r into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return ErrPayloadTooBig
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON body", ErrBadRequest)
	}
	return nil
}
