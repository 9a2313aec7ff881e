package api

import (
	"net/http"

	"github.com/okian/dwrs/internal/domain/attribute"
	"github.com/okian/dwrs/internal/domain/types"
)

// CatalogueHandler serves role and tactic definitions.
type CatalogueHandler struct {
	deps CatalogueDependencies
}

// NewCatalogueHandler creates a new catalogue handler.
func NewCatalogueHandler(deps CatalogueDependencies) *CatalogueHandler {
	return &CatalogueHandler{deps: deps}
}

type roleView struct {
	Name       string           `json:"name"`
	Display    string           `json:"display,omitempty"`
	Positions  []types.Position `json:"positions,omitempty"`
	Key        []attribute.Name `json:"key"`
	Preferable []attribute.Name `json:"preferable"`
	Goalkeeper bool             `json:"goalkeeper"`
}

// HandleRoles handles GET /roles requests.
func (h *CatalogueHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	defs := h.deps.Roles()
	out := make([]roleView, 0, len(defs))
	for _, d := range defs {
		out = append(out, roleView{
			Name:       d.Name,
			Display:    d.Display,
			Positions:  d.Positions,
			Key:        d.Key,
			Preferable: d.Preferable,
			Goalkeeper: d.Goalkeeper,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleTactics handles GET /tactics requests.
func (h *CatalogueHandler) HandleTactics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Tactics())
}
