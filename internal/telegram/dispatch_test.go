package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func echoHandler(called *bool) MessageFunc {
	return func(_ context.Context, userID int64, text string) []string {
		*called = true
		return []string{"echo: " + text}
	}
}

func TestDispatcher_PrivateTextMessage(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	var called bool
	d := NewDispatcher(client, echoHandler(&called))

	upd := Update{UpdateID: 1, Message: &Message{
		From: &User{ID: 55},
		Chat: Chat{ID: 55, Type: "private"},
		Text: "hello",
	}}
	if err := d.HandleUpdate(context.Background(), upd); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if !called {
		t.Error("engine handler not invoked")
	}

	sent := api.sentMessages()
	if len(sent) != 1 || sent[0].Text != "echo: hello" {
		t.Errorf("unexpected replies: %+v", sent)
	}
}

func TestDispatcher_GroupChatRejected(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	var called bool
	d := NewDispatcher(client, echoHandler(&called))

	upd := Update{UpdateID: 2, Message: &Message{
		From: &User{ID: 55},
		Chat: Chat{ID: -100, Type: "group"},
		Text: "/start",
	}}
	if err := d.HandleUpdate(context.Background(), upd); err != nil {
		t.Fatalf("HandleUpdate failed: %v", err)
	}
	if called {
		t.Error("group chat message reached the engine")
	}

	sent := api.sentMessages()
	if len(sent) != 1 || !strings.Contains(sent[0].Text, "direct message") {
		t.Errorf("expected private-only notice, got %+v", sent)
	}
}

func TestDispatcher_DropsMalformedUpdates(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	var called bool
	d := NewDispatcher(client, echoHandler(&called))

	for name, upd := range map[string]Update{
		"no message": {UpdateID: 3},
		"no sender":  {UpdateID: 4, Message: &Message{Chat: Chat{ID: 1, Type: "private"}, Text: "x"}},
		"no text":    {UpdateID: 5, Message: &Message{From: &User{ID: 1}, Chat: Chat{ID: 1, Type: "private"}}},
		"from a bot": {UpdateID: 6, Message: &Message{From: &User{ID: 2, IsBot: true}, Chat: Chat{ID: 2, Type: "private"}, Text: "x"}},
	} {
		if err := d.HandleUpdate(context.Background(), upd); err != nil {
			t.Errorf("%s: HandleUpdate failed: %v", name, err)
		}
	}

	if called {
		t.Error("malformed update reached the engine")
	}
	if sent := api.sentMessages(); len(sent) != 0 {
		t.Errorf("malformed updates produced replies: %+v", sent)
	}
}

func TestWebhookHandler(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	var called bool
	d := NewDispatcher(client, echoHandler(&called))
	wh := NewWebhookHandler(d, "s3cret")

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
		req.Header.Set(secretTokenHeader, "wrong")
		w := httptest.NewRecorder()

		wh.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{not json`))
		req.Header.Set(secretTokenHeader, "s3cret")
		w := httptest.NewRecorder()

		wh.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("valid update", func(t *testing.T) {
		body := `{"update_id":9,"message":{"message_id":1,"from":{"id":55},"chat":{"id":55,"type":"private"},"text":"hi"}}`
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
		req.Header.Set(secretTokenHeader, "s3cret")
		w := httptest.NewRecorder()

		wh.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if !called {
			t.Error("valid update did not reach the engine")
		}
	})
}
