package api

import (
	"net/http"

	"github.com/okian/dwrs/internal/adapters/repository"
)

// MatrixHandler handles player x role matrix requests.
type MatrixHandler struct {
	deps MatrixDependencies
}

// NewMatrixHandler creates a new matrix handler.
func NewMatrixHandler(deps MatrixDependencies) *MatrixHandler {
	return &MatrixHandler{deps: deps}
}

type matrixRequest struct {
	Club      string   `json:"club"`
	MaxAge    int      `json:"max_age"`
	PlayerIDs []string `json:"player_ids"`
	Roles     []string `json:"roles"`
}

// HandleMatrix handles POST /matrix requests.
func (h *MatrixHandler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	const op = "api.matrix"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matrixRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.MaxAge < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	pool, err := h.deps.Roster().Pool(r.Context(), repository.Filter{
		Club:   req.Club,
		MaxAge: req.MaxAge,
		IDs:    req.PlayerIDs,
	})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	m, err := h.deps.Matrix(r.Context(), pool, req.Roles)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
