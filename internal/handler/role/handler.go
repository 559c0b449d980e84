package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	roleModel "github.com/mishrasarthak227/ai-interview-agent/internal/model/role"
	"github.com/mishrasarthak227/ai-interview-agent/pkg/utils"
)

// Handler serves the job-role catalog.
type Handler struct {
	store roleModel.Store
}

// New creates a role handler.
func New(store roleModel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers role routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/roles", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}
