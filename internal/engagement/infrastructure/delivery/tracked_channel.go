package delivery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
)

// TrackedChannel decorates a DeliveryChannel with a Registry so pending
// identifiers survive process restarts. Registry failures never fail the
// delivery call; bookkeeping loss only means a stale notification may
// linger until the next pass supersedes it.
type TrackedChannel struct {
	inner    domain.DeliveryChannel
	registry Registry
	logger   *slog.Logger
}

// NewTrackedChannel wraps inner with registry bookkeeping.
func NewTrackedChannel(inner domain.DeliveryChannel, registry Registry, logger *slog.Logger) *TrackedChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackedChannel{inner: inner, registry: registry, logger: logger}
}

// Schedule forwards the instruction and tracks the identifier.
func (c *TrackedChannel) Schedule(ctx context.Context, identifier string, content domain.NotificationContent, trigger domain.Trigger) error {
	if err := c.inner.Schedule(ctx, identifier, content, trigger); err != nil {
		return err
	}
	if err := c.registry.Track(ctx, identifier); err != nil {
		c.logger.Warn("failed to track pending identifier",
			"identifier", identifier,
			"error", err,
		)
	}
	return nil
}

// Cancel forwards the instruction and untracks the identifier.
func (c *TrackedChannel) Cancel(ctx context.Context, identifier string) error {
	if err := c.inner.Cancel(ctx, identifier); err != nil {
		return err
	}
	if err := c.registry.Untrack(ctx, identifier); err != nil {
		c.logger.Warn("failed to untrack pending identifier",
			"identifier", identifier,
			"error", err,
		)
	}
	return nil
}

// CancelAllPending cancels every tracked identifier. Called on scheduler
// startup so instructions from a previous process cannot go stale.
func (c *TrackedChannel) CancelAllPending(ctx context.Context) error {
	identifiers, err := c.registry.Pending(ctx)
	if err != nil {
		return err
	}
	for _, id := range identifiers {
		if err := c.Cancel(ctx, id); err != nil {
			c.logger.Warn("failed to cancel stale notification",
				"identifier", id,
				"error", err,
			)
		}
	}
	return nil
}

// MemoryRegistry is an in-process Registry for the CLI and tests.
type MemoryRegistry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{ids: make(map[string]struct{})}
}

// Track adds the identifier.
func (r *MemoryRegistry) Track(ctx context.Context, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[identifier] = struct{}{}
	return nil
}

// Untrack removes the identifier.
func (r *MemoryRegistry) Untrack(ctx context.Context, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, identifier)
	return nil
}

// Pending returns all tracked identifiers.
func (r *MemoryRegistry) Pending(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	return out, nil
}
