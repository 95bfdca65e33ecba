package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeAPI is an httptest Bot API double recording sendMessage calls.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []sentMessage
	updates  []Update
	failSend bool
}

type sentMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/bottest-token/sendMessage":
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failSend {
				writeEnvelope(w, false, nil, "simulated failure")
				return
			}
			var msg sentMessage
			if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
				t.Errorf("malformed sendMessage body: %v", err)
			}
			f.sent = append(f.sent, msg)
			writeEnvelope(w, true, map[string]any{}, "")
		case r.URL.Path == "/bottest-token/getUpdates":
			f.mu.Lock()
			defer f.mu.Unlock()
			writeEnvelope(w, true, f.updates, "")
		case r.URL.Path == "/bottest-token/setWebhook",
			r.URL.Path == "/bottest-token/deleteWebhook":
			writeEnvelope(w, true, true, "")
		default:
			t.Errorf("unexpected API path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeAPI) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func writeEnvelope(w http.ResponseWriter, ok bool, result any, desc string) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{"ok": ok}
	if result != nil {
		resp["result"] = result
	}
	if desc != "" {
		resp["description"] = desc
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("test-token", srv.URL)
}

func TestClient_SendMessage(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	if err := client.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	sent := api.sentMessages()
	if len(sent) != 1 || sent[0].ChatID != 42 || sent[0].Text != "hello" {
		t.Errorf("unexpected sent messages: %+v", sent)
	}
}

func TestClient_SendMessage_APIError(t *testing.T) {
	api := &fakeAPI{failSend: true}
	client := newTestClient(t, api)

	err := client.SendMessage(context.Background(), 42, "hello")
	if err == nil {
		t.Fatal("expected error on ok:false envelope")
	}
}

func TestClient_GetUpdates(t *testing.T) {
	api := &fakeAPI{updates: []Update{
		{UpdateID: 7, Message: &Message{
			From: &User{ID: 99},
			Chat: Chat{ID: 99, Type: "private"},
			Text: "/start",
		}},
	}}
	client := newTestClient(t, api)

	updates, err := client.GetUpdates(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("GetUpdates failed: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateID != 7 || updates[0].Message.Text != "/start" {
		t.Errorf("unexpected updates: %+v", updates)
	}
}

func TestClient_SetWebhook(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	if err := client.SetWebhook(context.Background(), "https://example.org/webhook", "s3cret"); err != nil {
		t.Fatalf("SetWebhook failed: %v", err)
	}
	if err := client.DeleteWebhook(context.Background()); err != nil {
		t.Fatalf("DeleteWebhook failed: %v", err)
	}
}
