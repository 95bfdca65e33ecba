package dialog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/avelin/profilebot/internal/store"
	"github.com/avelin/profilebot/internal/validate"
)

// EventKind classifies an inbound interaction.
type EventKind int

const (
	// EventText is free text interpreted according to the current step.
	EventText EventKind = iota
	// EventStart begins a fresh dialogue, discarding any unsaved draft.
	EventStart
	// EventCancel aborts the dialogue without persisting anything.
	EventCancel
	// EventDelete erases the stored record; it needs no active session and
	// leaves one untouched if present.
	EventDelete
)

// Event is one inbound user interaction after command parsing.
type Event struct {
	Kind EventKind
	Text string
}

// Effect is what a transition asks the engine to do. Replies are sent in
// order; Save and Delete request storage calls, which the engine performs
// before deciding the session's fate.
type Effect struct {
	Replies []string
	Save    bool
	Delete  bool
}

// transition applies one event to a session and returns the next session
// (nil destroys it) plus the resulting effect. It is pure: storage and
// logging stay in the engine, so transitions are testable in isolation.
func transition(sess *Session, ev Event) (*Session, Effect) {
	switch ev.Kind {
	case EventStart:
		// Restart discards any unsaved draft.
		return &Session{Step: StepAwaitingName}, Effect{Replies: []string{msgConsentAndAskName}}

	case EventCancel:
		return nil, Effect{Replies: []string{msgCancelled}}

	case EventDelete:
		return sess, Effect{Delete: true}
	}

	if sess == nil {
		return nil, Effect{Replies: []string{msgNoSession}}
	}

	switch sess.Step {
	case StepAwaitingName:
		name, err := validate.Name(ev.Text)
		if err != nil {
			return sess, Effect{Replies: []string{msgNameInvalid}}
		}
		sess.Draft.Name = name
		sess.Step = StepAwaitingAge
		return sess, Effect{Replies: []string{msgAskAge(name)}}

	case StepAwaitingAge:
		age, err := validate.Age(ev.Text)
		if err != nil {
			reply := msgAgeNotANumber
			if errors.Is(err, validate.ErrOutOfRange) {
				reply = msgAgeOutOfRange
			}
			return sess, Effect{Replies: []string{reply}}
		}
		sess.Draft.Age = age
		sess.Step = StepAwaitingAddress
		return sess, Effect{Replies: []string{msgAskAddress}}

	case StepAwaitingAddress:
		address, err := validate.Address(ev.Text)
		if err != nil {
			return sess, Effect{Replies: []string{msgAddressInvalid}}
		}
		sess.Draft.Address = address
		return sess, Effect{Save: true}
	}

	return sess, Effect{Replies: []string{msgNoSession}}
}

// Engine drives dialogue sessions and invokes the storage adapter.
type Engine struct {
	repo     store.Repository
	sessions *Registry
}

// NewEngine creates a dialogue engine backed by the given repository and
// session registry.
func NewEngine(repo store.Repository, sessions *Registry) *Engine {
	return &Engine{repo: repo, sessions: sessions}
}

// ParseEvent turns raw message text into an event. Commands are recognized
// in any state; a trailing @botname suffix is stripped.
func ParseEvent(text string) Event {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "/") {
		cmd := strings.ToLower(strings.Fields(trimmed)[0])
		if at := strings.IndexByte(cmd, '@'); at > 0 {
			cmd = cmd[:at]
		}
		switch cmd {
		case "/start":
			return Event{Kind: EventStart}
		case "/cancel":
			return Event{Kind: EventCancel}
		case "/delete":
			return Event{Kind: EventDelete}
		}
	}
	return Event{Kind: EventText, Text: text}
}

// HandleMessage processes one inbound message for a user and returns the
// replies to send, in order. Processing for a single user is serialized by
// the session registry; distinct users run concurrently. The storage call,
// when one happens, completes before any reply is returned.
func (e *Engine) HandleMessage(ctx context.Context, userID int64, text string) []string {
	sl := e.sessions.acquire(userID)
	defer sl.release()

	now := time.Now()
	sess := sl.session(e.sessions.timeout, now)
	ev := ParseEvent(text)

	if ev.Kind == EventStart {
		logStep(userID, "dialogue started", stepName(nil))
	}
	if ev.Kind == EventCancel && sess != nil {
		logStep(userID, "dialogue cancelled", stepName(sess))
	}

	next, eff := transition(sess, ev)
	if next != nil {
		next.UserID = userID
		next.LastActivity = now
	}
	sl.sess = next

	replies := eff.Replies

	if eff.Delete {
		replies = append(replies, e.deleteRecord(ctx, userID, stepName(sl.sess)))
	}

	if eff.Save {
		replies = append(replies, e.saveDraft(ctx, sl, userID))
	}

	return replies
}

// saveDraft runs the terminal saving step: upsert the completed draft,
// confirm on success, or keep the collected name and age and return the
// user to the address step on storage failure.
func (e *Engine) saveDraft(ctx context.Context, sl *slot, userID int64) string {
	draft := sl.sess.Draft

	if err := e.repo.UpsertUser(ctx, userID, draft.Name, draft.Age, draft.Address); err != nil {
		logStorageFailure(userID, "upsert", stepName(sl.sess), err)
		sl.sess.Step = StepAwaitingAddress
		sl.sess.Draft.Address = ""
		return msgSaveFailed
	}

	logStep(userID, "profile saved", stepName(sl.sess))
	sl.sess = nil
	return msgSaved(draft)
}

// deleteRecord erases the stored record. Absence is success; only a
// storage failure is surfaced, and then as a retry-later message.
func (e *Engine) deleteRecord(ctx context.Context, userID int64, step string) string {
	deleted, err := e.repo.DeleteUser(ctx, userID)
	if err != nil {
		logStorageFailure(userID, "delete", step, err)
		return msgDeleteFailed
	}

	logStep(userID, "profile delete handled", step)
	if deleted {
		return msgDeleted
	}
	return msgNothingStored
}

func stepName(sess *Session) string {
	if sess == nil {
		return "none"
	}
	return sess.Step.String()
}

// logStep and logStorageFailure are the engine's only logging paths. Their
// signatures accept the user ID, step name, and error category and nothing
// else, so draft field values can never reach the logs.
func logStep(userID int64, event, step string) {
	slog.Info("Dialogue event", "user_id", userID, "event", event, "step", step)
}

func logStorageFailure(userID int64, category, step string, err error) {
	slog.Error("Storage operation failed",
		"user_id", userID,
		"category", category,
		"step", step,
		"error", err)
}
