package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	recordinghandler "github.com/mishrasarthak227/ai-interview-agent/internal/handler/recording"
	rolehandler "github.com/mishrasarthak227/ai-interview-agent/internal/handler/role"
	sessionhandler "github.com/mishrasarthak227/ai-interview-agent/internal/handler/session"
	middlewarePkg "github.com/mishrasarthak227/ai-interview-agent/internal/middleware"
	roleModel "github.com/mishrasarthak227/ai-interview-agent/internal/model/role"
	"github.com/mishrasarthak227/ai-interview-agent/internal/recorder"
	sessionService "github.com/mishrasarthak227/ai-interview-agent/internal/service/session"
)

// NewRouter wires HTTP routes to the session controller and recorder.
func NewRouter(roles roleModel.Store, ctrl *sessionService.Controller, rec *recorder.Recorder, chunks *capture.ChunkDevice) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	roleHandler := rolehandler.New(roles)
	sessionHandler := sessionhandler.New(ctrl)
	recordingHandler := recordinghandler.New(rec, ctrl, chunks)

	r.Route("/api", func(api chi.Router) {
		roleHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		recordingHandler.RegisterRoutes(api)
	})

	return r
}
