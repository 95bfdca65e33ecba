package telegram

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// secretTokenHeader carries the webhook secret Telegram echoes back on
// every delivery.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler terminates inbound webhook deliveries (production mode).
type WebhookHandler struct {
	dispatcher *Dispatcher
	secret     string
}

// NewWebhookHandler creates a webhook handler verifying the given secret.
func NewWebhookHandler(dispatcher *Dispatcher, secret string) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, secret: secret}
}

// ServeHTTP implements http.Handler for the webhook route.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(secretTokenHeader) != h.secret {
		slog.Warn("Invalid webhook secret token received")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		// Protocol misuse: log and drop, sessions unaffected.
		slog.Warn("Malformed webhook body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.HandleUpdate(r.Context(), upd); err != nil {
		slog.Error("Error processing webhook update", "error", err, "update_id", upd.UpdateID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
