package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/dwrs/internal/adapters/definitions"
	"github.com/okian/dwrs/internal/domain/model"
)

// ScoreHandler handles single-player score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// scoreRequest names a stored player or carries one inline.
type scoreRequest struct {
	PlayerID string                    `json:"player_id"`
	Player   *definitions.PlayerRecord `json:"player"`
	Role     string                    `json:"role"`
}

func (s scoreRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Role) == "":
		return errors.New("missing role")
	case s.Player == nil && strings.TrimSpace(s.PlayerID) == "":
		return errors.New("missing player_id or player")
	case s.Player != nil && s.PlayerID != "":
		return errors.New("player_id and player are mutually exclusive")
	}
	return nil
}

type scoreResponse struct {
	model.ScoreResult
	Percent int `json:"percent"`
}

// HandleScore handles POST /score requests.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		res model.ScoreResult
		err error
	)
	if req.Player != nil {
		var p model.Player
		if p, err = req.Player.ToModel(); err != nil {
			writeFailure(w, op, err)
			return
		}
		res, err = h.deps.Score(r.Context(), &p, req.Role)
	} else {
		res, err = h.deps.ScoreByID(r.Context(), req.PlayerID, req.Role)
	}
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{ScoreResult: res, Percent: res.Percent()})
}
