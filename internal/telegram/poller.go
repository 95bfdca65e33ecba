package telegram

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	pollTimeoutSeconds = 30
	pollRetryDelay     = 3 * time.Second
)

// Poller consumes updates via getUpdates long-polling (development mode).
type Poller struct {
	client     *Client
	dispatcher *Dispatcher
}

// NewPoller creates a long-poller feeding updates to the dispatcher.
func NewPoller(client *Client, dispatcher *Dispatcher) *Poller {
	return &Poller{client: client, dispatcher: dispatcher}
}

// Run polls until the context is cancelled. Each update is dispatched on
// its own goroutine; the dialogue engine serializes per user, so two
// deliveries for one user cannot interleave, while different users proceed
// concurrently. Batch-internal ordering for a single user is not
// guaranteed, matching the assumption that a user does not send two
// messages whose processing overlaps.
func (p *Poller) Run(ctx context.Context) {
	slog.Info("Long-polling started", "timeout_seconds", pollTimeoutSeconds)

	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Long-polling stopped", "reason", ctx.Err())
				return
			}
			slog.Error("getUpdates failed, backing off", "error", err, "delay", pollRetryDelay)
			select {
			case <-time.After(pollRetryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			go func(upd Update) {
				if err := p.dispatcher.HandleUpdate(ctx, upd); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("Failed to handle update", "error", err, "update_id", upd.UpdateID)
				}
			}(upd)
		}

		if ctx.Err() != nil {
			slog.Info("Long-polling stopped", "reason", ctx.Err())
			return
		}
	}
}
