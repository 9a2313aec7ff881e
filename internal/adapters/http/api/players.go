package api

import (
	"net/http"
	"strconv"

	"github.com/okian/dwrs/internal/adapters/definitions"
	"github.com/okian/dwrs/internal/adapters/repository"
	"github.com/okian/dwrs/internal/domain/model"
)

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type addPlayersResponse struct {
	IDs []string `json:"ids"`
}

// HandlePlayers dispatches GET and POST /players.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.NotFound(w, r)
	}
}

// list handles GET /players?club=&max_age= requests.
func (h *PlayersHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	f := repository.Filter{Club: r.URL.Query().Get("club")}
	if v := r.URL.Query().Get("max_age"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		f.MaxAge = n
	}
	pool, err := h.deps.Roster().Pool(r.Context(), f)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	out := make([]definitions.PlayerRecord, len(pool))
	for i := range pool {
		out[i] = definitions.FromModel(&pool[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// add handles POST /players with a JSON array of players.
func (h *PlayersHandler) add(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_players"
	var recs []definitions.PlayerRecord
	if err := decodeJSON(w, r, &recs); err != nil {
		writeFailure(w, op, err)
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrMissingField, ErrBadRequest))
		return
	}
	players := make([]model.Player, len(recs))
	for i, rec := range recs {
		p, err := rec.ToModel()
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		players[i] = p
	}
	ids, err := h.deps.AddPlayers(r.Context(), players...)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, addPlayersResponse{IDs: ids})
}
