package delivery

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
)

// PendingNotification is one outstanding schedule instruction.
type PendingNotification struct {
	Identifier string
	Content    domain.NotificationContent
	Trigger    domain.Trigger
}

// MemoryChannel is an in-process DeliveryChannel used by the CLI and tests.
// Scheduling under an existing identifier replaces the pending instruction,
// so at most one is outstanding per identifier.
type MemoryChannel struct {
	mu      sync.Mutex
	pending map[string]PendingNotification
}

// NewMemoryChannel creates an empty in-memory channel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{pending: make(map[string]PendingNotification)}
}

// Schedule records the instruction, superseding any prior one under the
// same identifier.
func (c *MemoryChannel) Schedule(ctx context.Context, identifier string, content domain.NotificationContent, trigger domain.Trigger) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[identifier] = PendingNotification{
		Identifier: identifier,
		Content:    content,
		Trigger:    trigger,
	}
	return nil
}

// Cancel drops the pending instruction, if any.
func (c *MemoryChannel) Cancel(ctx context.Context, identifier string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, identifier)
	return nil
}

// Pending returns a snapshot of outstanding instructions.
func (c *MemoryChannel) Pending() []PendingNotification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PendingNotification, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, p)
	}
	return out
}

// PendingFor returns the outstanding instruction for one identifier.
func (c *MemoryChannel) PendingFor(identifier string) (PendingNotification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[identifier]
	return p, ok
}
