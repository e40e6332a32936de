// Package events holds the ledger's domain events and the gateway that fans
// them out to subscribers.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-ledger/mailbox"

	"go.uber.org/zap"
)

// Publisher is implemented by anything that accepts domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBuffer bounds every subscription queue. Zero keeps them unbounded.
func WithBuffer(size int) Option {
	return func(g *Gateway) {
		g.buffer = size
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gateway broadcasts every published event to every open subscription.
// Each subscription has its own queue, so a slow consumer only delays itself.
type Gateway struct {
	buffer int
	logger *zap.Logger

	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	nextID int

	diagnostics *Subscription
}

// NewGateway returns a gateway with its diagnostic subscription already open.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		logger: zap.NewNop(),
		subs:   make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.diagnostics = g.Subscribe("diagnostics")
	return g
}

// Subscribe opens a subscription that receives every event published from now on.
func (g *Gateway) Subscribe(name string) *Subscription {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextID++
	sub := &Subscription{
		gateway: g,
		queue: mailbox.New[Event](
			fmt.Sprintf("events.%s.%d", name, g.nextID),
			mailbox.WithCapacity(g.buffer),
			mailbox.WithLogger(g.logger),
		),
	}
	g.subs[sub] = struct{}{}
	return sub
}

// Publish copies event into every subscription queue.
func (g *Gateway) Publish(ctx context.Context, event Event) {
	g.mu.RLock()
	subs := make([]*Subscription, 0, len(g.subs))
	for sub := range g.subs {
		subs = append(subs, sub)
	}
	g.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.queue.Send(ctx, event); err != nil && !errors.Is(err, mailbox.ErrClosed) {
			g.logger.Warn("event not delivered",
				zap.String("subscription", sub.queue.Name()),
				zap.String("transferId", event.CorrelationID()),
				zap.Error(err),
			)
		}
	}
}

// Observe drains the diagnostic subscription, logging each event at debug level.
func (g *Gateway) Observe(ctx context.Context) error {
	return g.diagnostics.Run(ctx, func(_ context.Context, event Event) {
		g.logger.Debug("gateway got an event",
			zap.String("type", fmt.Sprintf("%T", event)),
			zap.String("transferId", event.CorrelationID()),
			zap.Any("event", event),
		)
	})
}

func (g *Gateway) unsubscribe(sub *Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.subs, sub)
}

// Subscription is one consumer's private, ordered view of the event stream.
type Subscription struct {
	gateway *Gateway
	queue   *mailbox.Mailbox[Event]
}

// Run hands events to handle in publish order until ctx is done or the
// subscription is closed.
func (s *Subscription) Run(ctx context.Context, handle func(context.Context, Event)) error {
	return s.queue.Run(ctx, handle)
}

// Close detaches the subscription from the gateway and stops its consumer.
func (s *Subscription) Close() {
	s.gateway.unsubscribe(s)
	s.queue.Close()
}
