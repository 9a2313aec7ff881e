package api

import (
	"net/http"
	"strings"

	"github.com/okian/dwrs/internal/adapters/repository"
)

// AssignHandler handles squad assignment and tactic comparison requests.
type AssignHandler struct {
	deps AssignDependencies
}

// NewAssignHandler creates a new assign handler.
func NewAssignHandler(deps AssignDependencies) *AssignHandler {
	return &AssignHandler{deps: deps}
}

type assignRequest struct {
	Tactic    string   `json:"tactic"`
	Club      string   `json:"club"`
	MaxAge    int      `json:"max_age"`
	PlayerIDs []string `json:"player_ids"`
}

type compareRequest struct {
	Tactics   []string `json:"tactics"`
	Club      string   `json:"club"`
	MaxAge    int      `json:"max_age"`
	PlayerIDs []string `json:"player_ids"`
}

// HandleAssign handles POST /assign requests.
func (h *AssignHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req assignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if strings.TrimSpace(req.Tactic) == "" || req.MaxAge < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingField))
		return
	}
	res, err := h.deps.Assign(r.Context(), req.Tactic, repository.Filter{
		Club:   req.Club,
		MaxAge: req.MaxAge,
		IDs:    req.PlayerIDs,
	})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleCompare handles POST /compare requests.
func (h *AssignHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.MaxAge < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	out, err := h.deps.Compare(r.Context(), req.Tactics, repository.Filter{
		Club:   req.Club,
		MaxAge: req.MaxAge,
		IDs:    req.PlayerIDs,
	})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
