package dialog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Draft holds the field values collected so far.
type Draft struct {
	Name    string
	Age     int
	Address string
}

// Session is the transient per-user dialogue state. It is never persisted.
type Session struct {
	UserID       int64
	Step         Step
	Draft        Draft
	LastActivity time.Time
}

// slot serializes all dialogue processing for one user. Distinct users'
// slots are independent and may be handled concurrently.
type slot struct {
	mu   sync.Mutex
	sess *Session
}

// Registry owns the mapping from Telegram user ID to active session and
// mediates all access through per-user locking.
type Registry struct {
	mu      sync.Mutex
	slots   map[int64]*slot
	timeout time.Duration
}

// NewRegistry creates a session registry. Sessions idle for longer than
// timeout are treated as absent.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		slots:   make(map[int64]*slot),
		timeout: timeout,
	}
}

// acquire locks the user's slot and returns it. The caller must call
// release when done; all processing for the user happens under this lock,
// including storage calls, so two deliveries for the same user can never
// interleave.
func (r *Registry) acquire(userID int64) *slot {
	for {
		r.mu.Lock()
		sl, ok := r.slots[userID]
		if !ok {
			sl = &slot{}
			r.slots[userID] = sl
		}
		r.mu.Unlock()

		sl.mu.Lock()

		// The sweeper may have pruned this slot between the map lookup and
		// the slot lock. A pruned slot is orphaned: holding it would let a
		// second delivery for the same user grab a fresh one and interleave.
		// Sweep only prunes slots it could TryLock, so once we confirm the
		// slot is still mapped while holding its lock, it stays mapped.
		r.mu.Lock()
		current := r.slots[userID]
		r.mu.Unlock()
		if current == sl {
			return sl
		}
		sl.mu.Unlock()
	}
}

func (sl *slot) release() {
	sl.mu.Unlock()
}

// session returns the slot's session, expiring it lazily if it has been
// idle past the registry timeout.
func (sl *slot) session(timeout time.Duration, now time.Time) *Session {
	if sl.sess == nil {
		return nil
	}
	if timeout > 0 && now.Sub(sl.sess.LastActivity) > timeout {
		slog.Info("Dialogue session expired", "user_id", sl.sess.UserID, "step", sl.sess.Step.String())
		sl.sess = nil
		return nil
	}
	return sl.sess
}

// Sweep removes sessions idle past the timeout and prunes empty slots.
// Slots currently being processed are skipped and picked up next round.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for userID, sl := range r.slots {
		if !sl.mu.TryLock() {
			continue
		}
		if sl.sess != nil && r.timeout > 0 && now.Sub(sl.sess.LastActivity) > r.timeout {
			slog.Info("Dialogue session expired", "user_id", userID, "step", sl.sess.Step.String())
			sl.sess = nil
			expired++
		}
		if sl.sess == nil {
			delete(r.slots, userID)
		}
		sl.mu.Unlock()
	}
	return expired
}

// ActiveSessions returns the number of live (non-expired) sessions.
func (r *Registry) ActiveSessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	n := 0
	for _, sl := range r.slots {
		if !sl.mu.TryLock() {
			n++ // in-flight processing implies a live user
			continue
		}
		if sl.sess != nil && (r.timeout <= 0 || now.Sub(sl.sess.LastActivity) <= r.timeout) {
			n++
		}
		sl.mu.Unlock()
	}
	return n
}

const sweepInterval = time.Minute

// StartSweeper runs a background goroutine that periodically removes
// expired sessions, so abandoned dialogues do not pin memory between
// interactions.
func (r *Registry) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session sweeper started", "interval", sweepInterval, "timeout", r.timeout)

		for {
			select {
			case <-ticker.C:
				if expired := r.Sweep(time.Now()); expired > 0 {
					slog.Info("Session sweeper removed expired sessions", "count", expired)
				}
			case <-ctx.Done():
				slog.Info("Session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
