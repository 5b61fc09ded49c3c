package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/sony/gobreaker/v2"
)

// ResilientChannel wraps a DeliveryChannel with a circuit breaker and one
// immediate retry. The distilled behavior had no retry policy; the decision
// here is bounded on purpose: one retry per call, then the habit fails for
// this run, and a dead channel trips the breaker so the rest of the batch
// fails fast.
type ResilientChannel struct {
	inner   domain.DeliveryChannel
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewResilientChannel wraps inner with fault isolation.
func NewResilientChannel(inner domain.DeliveryChannel, logger *slog.Logger) *ResilientChannel {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "delivery-channel",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &ResilientChannel{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Schedule forwards to the inner channel through the breaker.
func (c *ResilientChannel) Schedule(ctx context.Context, identifier string, content domain.NotificationContent, trigger domain.Trigger) error {
	return c.execute(ctx, identifier, func() error {
		return c.inner.Schedule(ctx, identifier, content, trigger)
	})
}

// Cancel forwards to the inner channel through the breaker.
func (c *ResilientChannel) Cancel(ctx context.Context, identifier string) error {
	return c.execute(ctx, identifier, func() error {
		return c.inner.Cancel(ctx, identifier)
	})
}

func (c *ResilientChannel) execute(ctx context.Context, identifier string, op func() error) error {
	_, err := c.breaker.Execute(func() (any, error) {
		if err := op(); err != nil {
			c.logger.Debug("delivery call failed, retrying once",
				"identifier", identifier,
				"error", err,
			)
			return nil, op()
		}
		return nil, nil
	})
	return err
}
