package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
	"github.com/mishrasarthak227/ai-interview-agent/internal/config"
	"github.com/mishrasarthak227/ai-interview-agent/internal/handler"
	"github.com/mishrasarthak227/ai-interview-agent/internal/model/role"
	"github.com/mishrasarthak227/ai-interview-agent/internal/recorder"
	"github.com/mishrasarthak227/ai-interview-agent/internal/remote"
	"github.com/mishrasarthak227/ai-interview-agent/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	roleStore := role.NewMemoryStore(role.Seed())

	client := remote.NewClient(remote.Config{
		BaseURL:   cfg.Remote.BaseURL,
		Timeout:   cfg.Remote.Timeout,
		EvalModel: cfg.Remote.EvalModel,
	})
	logger.Info("remote backend configured", "baseURL", cfg.Remote.BaseURL, "timeout", cfg.Remote.Timeout)

	controller := session.NewController(client, client, session.Config{
		QuestionCap:   cfg.Session.QuestionCap,
		FollowupDelay: cfg.Session.FollowupDelay,
		AutoAdvance:   true,
	}, logger)
	if cfg.Session.DefaultRole != "" {
		if err := controller.SetJobRole(cfg.Session.DefaultRole); err != nil {
			log.Fatalf("failed to set default job role: %v", err)
		}
	}

	// Browser clients stream PCM chunks over the capture websocket; the chunk
	// device feeds those into whatever recording is live.
	chunks := capture.NewChunkDevice()
	rec := recorder.New(chunks, client, recorder.Config{
		SampleRate: cfg.Capture.SampleRate,
		Channels:   cfg.Capture.Channels,
	}, logger)

	router := handler.NewRouter(roleStore, controller, rec, chunks)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("interview agent listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
