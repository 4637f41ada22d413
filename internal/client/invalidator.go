package client

import (
	"context"
	"fmt"

	"lpt-event/internal/kafka"
	"lpt-event/internal/logger"
	"lpt-event/internal/models"
)

// Invalidator evicts cache keys when the change feed reports a
// mutation made elsewhere, so this instance's next read re-fetches.
type Invalidator struct {
	Cache    QueryCache
	Consumer *kafka.Consumer
	Logger   *logger.Logger
}

func NewInvalidator(cache QueryCache, consumer *kafka.Consumer, log *logger.Logger) *Invalidator {
	return &Invalidator{Cache: cache, Consumer: consumer, Logger: log}
}

// Run blocks consuming change messages until ctx is cancelled or the
// consumer is closed. Usually called in its own goroutine.
func (i *Invalidator) Run(ctx context.Context) {
	i.Consumer.Start(ctx, func(change models.EventChange) {
		i.Apply(ctx, change)
	})
}

// Apply evicts the cache keys touched by one change.
func (i *Invalidator) Apply(ctx context.Context, change models.EventChange) {
	keys := []string{EventsKey}
	if change.EventID != 0 {
		keys = append(keys, EventKey(change.EventID))
	}
	if err := i.Cache.Invalidate(ctx, keys...); err != nil {
		if i.Logger != nil {
			i.Logger.Warn("CACHE", fmt.Sprintf("Failed to invalidate after %s change: %v", change.Action, err))
		}
		return
	}
	if i.Logger != nil {
		i.Logger.LogCache("INVALIDATE", EventKey(change.EventID), change.Action)
	}
}

func (i *Invalidator) Close() error {
	return i.Consumer.Close()
}
