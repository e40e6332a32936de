// Package ledger assembles the accounts and transfers actors, the event
// gateway and the transfer saga into one running unit.
package ledger

import (
	"context"

	"go-ledger/accounts"
	"go-ledger/events"
	"go-ledger/mailbox"
	"go-ledger/saga"
	"go-ledger/store"
	"go-ledger/transfers"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options tunes queue sizes. Zero values keep the queues unbounded.
type Options struct {
	MailboxCapacity int
	EventBuffer     int
}

// Ledger owns every long running loop of the system.
type Ledger struct {
	Accounts  *accounts.Service
	Transfers *transfers.Service
	Events    *events.Gateway

	accountsActor  *accounts.Actor
	transfersActor *transfers.Actor
	saga           *saga.Saga
	logger         *zap.Logger
}

// New builds a ledger with fresh in-memory stores. Nothing runs until Run.
func New(opts Options, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	gateway := events.NewGateway(
		events.WithBuffer(opts.EventBuffer),
		events.WithLogger(logger.Named("events")),
	)
	// The saga subscribes before any actor can publish.
	sagaEvents := gateway.Subscribe("saga")

	capacity := mailbox.WithCapacity(opts.MailboxCapacity)
	accountsActor := accounts.NewActor(store.NewAccounts(), gateway, logger, capacity)
	transfersActor := transfers.NewActor(store.NewTransfers(), gateway, logger, capacity)

	return &Ledger{
		Accounts:       accounts.NewService(accountsActor),
		Transfers:      transfers.NewService(transfersActor),
		Events:         gateway,
		accountsActor:  accountsActor,
		transfersActor: transfersActor,
		saga:           saga.New(accountsActor, transfersActor, sagaEvents, logger),
		logger:         logger,
	}
}

// Run starts the actors, the saga and the diagnostic observer and blocks
// until ctx is done or one of them fails.
func (l *Ledger) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error { return l.accountsActor.Run(ctx) })
	group.Go(func() error { return l.transfersActor.Run(ctx) })
	group.Go(func() error { return l.saga.Run(ctx) })
	group.Go(func() error { return l.Events.Observe(ctx) })

	l.logger.Info("ledger started")
	err := group.Wait()
	l.logger.Info("ledger stopped")
	return err
}
