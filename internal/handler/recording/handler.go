package recording

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	"github.com/mishrasarthak227/ai-interview-agent/internal/recorder"
	sessionService "github.com/mishrasarthak227/ai-interview-agent/internal/service/session"
	"github.com/mishrasarthak227/ai-interview-agent/pkg/utils"
)

// Handler exposes the recording state machine over HTTP plus a websocket
// channel that feeds captured audio chunks into the live recording.
type Handler struct {
	rec      *recorder.Recorder
	ctrl     *sessionService.Controller
	chunks   *capture.ChunkDevice
	upgrader websocket.Upgrader
}

// New creates a recording handler.
func New(rec *recorder.Recorder, ctrl *sessionService.Controller, chunks *capture.ChunkDevice) *Handler {
	return &Handler{
		rec:    rec,
		ctrl:   ctrl,
		chunks: chunks,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers recording routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/recording/start", h.handleStart)
	r.Post("/recording/stop", h.handleStop)
	r.Post("/recording/reset", h.handleReset)
	r.Post("/recording/submit", h.handleSubmit)
	r.Get("/capture/ws", h.handleCaptureSocket)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := h.rec.Start(r.Context()); err != nil {
		switch {
		case errors.Is(err, recorder.ErrInvalidState):
			utils.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, capture.ErrDeviceUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"state": h.rec.State().String()})
}

func (h *Handler) handleStop(w http.ResponseWriter, _ *http.Request) {
	artifact, err := h.rec.Stop()
	if err != nil {
		if errors.Is(err, recorder.ErrInvalidState) {
			utils.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"state":      h.rec.State().String(),
		"artifact":   artifact.ID,
		"mimeType":   artifact.MIMEType,
		"durationMs": artifact.Duration.Milliseconds(),
		"bytes":      len(artifact.Data),
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := h.rec.Reset(); err != nil {
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"state": h.rec.State().String()})
}

// handleSubmit uploads the retained clip and, on success, completes the
// current answer in the session. The active-question check runs before the
// upload: a clip scored with nowhere to append would be lost, since a
// successful submit clears the artifact.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if h.ctrl.Snapshot().CurrentQuestion == "" {
		utils.RespondError(w, http.StatusConflict, sessionService.ErrNoActiveQuestion.Error())
		return
	}

	result, err := h.rec.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, recorder.ErrInvalidState):
			utils.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, recorder.ErrUploadFailed):
			// The artifact is retained; the client may submit again.
			utils.RespondError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	entry, err := h.ctrl.CompleteAnswer(result)
	if err != nil {
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"entry":   entry,
		"session": h.ctrl.Snapshot(),
	})
}
