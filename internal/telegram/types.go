// Package telegram is a minimal Telegram Bot API transport: the handful of
// JSON calls the bot needs, a long-poller for development, and a webhook
// handler for production.
package telegram

// Update is one inbound event from the Bot API.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is an inbound chat message. Only the fields the bot consumes are
// mapped.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// User identifies the message sender. ID is the stable per-user integer
// used as the persistence key.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Chat identifies the conversation the message arrived in.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// IsPrivate reports whether the chat is a direct message with the bot.
func (c Chat) IsPrivate() bool {
	return c.Type == "private"
}
