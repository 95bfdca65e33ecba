// Package devchat exposes the dialogue over a local WebSocket so the bot
// can be exercised in development without a Telegram token. Each text frame
// is one inbound message; each reply goes back as its own frame.
package devchat

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// MessageFunc handles one inbound text message for a user and returns the
// replies to send, in order.
type MessageFunc func(ctx context.Context, userID int64, text string) []string

// Handler upgrades /ws/chat requests and bridges frames to the dialogue
// engine.
type Handler struct {
	handle MessageFunc
}

// NewHandler creates a dev chat handler over the given dialogue function.
func NewHandler(handle MessageFunc) *Handler {
	return &Handler{handle: handle}
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, connID := identify(r)
	slog.Info("Dev chat connection", "user_id", userID, "conn_id", connID, "ip", r.RemoteAddr)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept dev chat WebSocket", "error", err, "conn_id", connID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat ended"); closeErr != nil {
			slog.Debug("Failed to close dev chat WebSocket", "error", closeErr, "conn_id", connID)
		}
	}()

	ctx := r.Context()
	for {
		typ, data, err := ws.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				slog.Info("Dev chat closed", "user_id", userID, "conn_id", connID)
			} else {
				slog.Debug("Dev chat read error", "error", err, "conn_id", connID)
			}
			return
		}
		if typ != websocket.MessageText {
			slog.Info("Ignoring non-text dev chat frame", "conn_id", connID)
			continue
		}

		for _, reply := range h.handle(ctx, userID, string(data)) {
			if err := ws.Write(ctx, websocket.MessageText, []byte(reply)); err != nil {
				slog.Debug("Dev chat write error", "error", err, "conn_id", connID)
				return
			}
		}
	}
}

// identify picks the user ID for a connection: an explicit user_id query
// parameter when given, otherwise a synthetic negative ID derived from a
// fresh connection UUID so dev identities never collide with real Telegram
// user IDs.
func identify(r *http.Request) (int64, string) {
	connID := uuid.NewString()

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id, connID
		}
	}

	h := fnv.New64a()
	h.Write([]byte(connID))
	id := int64(h.Sum64())
	if id > 0 {
		id = -id
	}
	return id, connID
}
