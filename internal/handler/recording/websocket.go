package recording

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mishrasarthak227/ai-interview-agent/internal/capture"
)

const (
	readDeadline = 60 * time.Second
	pingInterval = 30 * time.Second
)

// handleCaptureSocket accepts a websocket whose binary messages carry
// little-endian 16-bit PCM chunks from the browser recorder. Chunks that
// arrive while nothing is recording are dropped; the recording lifecycle is
// driven by the /recording endpoints, not by the socket.
func (h *Handler) handleCaptureSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("capture socket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("capture socket connected", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	go h.pingLoop(ctx, conn)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("capture socket closed unexpectedly", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readDeadline))

		if messageType != websocket.BinaryMessage {
			continue
		}
		if err := h.chunks.Push(data); err != nil && !errors.Is(err, capture.ErrNotCapturing) {
			slog.Warn("capture chunk rejected", "error", err)
		}
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
