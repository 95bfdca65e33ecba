package telegram

import (
	"context"
	"fmt"
	"log/slog"
)

const msgPrivateOnly = "Please send me a direct message to use this bot. " +
	"I don't work in group chats for privacy reasons."

// MessageFunc handles one inbound text message for a user and returns the
// replies to send, in order.
type MessageFunc func(ctx context.Context, userID int64, text string) []string

// Dispatcher filters raw updates and forwards well-formed private text
// messages to the dialogue engine.
type Dispatcher struct {
	client *Client
	handle MessageFunc
}

// NewDispatcher creates a dispatcher sending replies through client.
func NewDispatcher(client *Client, handle MessageFunc) *Dispatcher {
	return &Dispatcher{client: client, handle: handle}
}

// HandleUpdate processes one update end to end. Malformed or unsupported
// updates are logged and dropped without touching any session. The returned
// error covers reply delivery only.
func (d *Dispatcher) HandleUpdate(ctx context.Context, upd Update) error {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		slog.Info("Ignoring unsupported update", "update_id", upd.UpdateID)
		return nil
	}
	if msg.From.IsBot {
		slog.Info("Ignoring message from bot", "update_id", upd.UpdateID)
		return nil
	}

	if !msg.Chat.IsPrivate() {
		slog.Info("Rejecting non-private chat", "update_id", upd.UpdateID, "chat_type", msg.Chat.Type)
		if err := d.client.SendMessage(ctx, msg.Chat.ID, msgPrivateOnly); err != nil {
			return fmt.Errorf("send private-only notice: %w", err)
		}
		return nil
	}

	replies := d.handle(ctx, msg.From.ID, msg.Text)
	for _, reply := range replies {
		if err := d.client.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return nil
}
