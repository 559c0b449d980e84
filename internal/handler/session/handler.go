package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionService "github.com/mishrasarthak227/ai-interview-agent/internal/service/session"
	"github.com/mishrasarthak227/ai-interview-agent/pkg/utils"
)

// Handler exposes the interview flow controller over HTTP.
type Handler struct {
	ctrl *sessionService.Controller
}

// New creates a session handler.
func New(ctrl *sessionService.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

// RegisterRoutes registers session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreate)
	r.Get("/session", h.handleSnapshot)
	r.Post("/session/question", h.handleNextQuestion)
	r.Post("/session/reset", h.handleReset)
	r.Post("/session/finalize", h.handleFinalize)
	r.Get("/session/performance", h.handlePerformance)
	r.Get("/session/export", h.handleExport)
}

// handleCreate starts a fresh session for a job role. Any role string is
// accepted unchanged; the catalog is advisory.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ctrl.SetJobRole(payload.Role); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, h.ctrl.Snapshot())
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *Handler) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.ctrl.RequestNextQuestion(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, sessionService.ErrAlreadyLoading),
			errors.Is(err, sessionService.ErrSessionComplete):
			utils.RespondError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"question": question})
}

func (h *Handler) handleReset(w http.ResponseWriter, _ *http.Request) {
	h.ctrl.ResetSession()
	utils.RespondJSON(w, http.StatusOK, h.ctrl.Snapshot())
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	narrative, err := h.ctrl.Finalize(r.Context())
	switch {
	case errors.Is(err, sessionService.ErrEmptySession):
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, sessionService.ErrAlreadyLoading):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sessionService.ErrEvaluationFailed):
		// A placeholder narrative was stored; the caller may retry.
		utils.RespondJSON(w, http.StatusBadGateway, map[string]string{
			"error":      err.Error(),
			"evaluation": narrative,
		})
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		utils.RespondJSON(w, http.StatusOK, map[string]string{"evaluation": narrative})
	}
}

func (h *Handler) handlePerformance(w http.ResponseWriter, _ *http.Request) {
	summary, ok := h.ctrl.Performance()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleExport(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.ctrl.Export())
}
