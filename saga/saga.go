// Package saga drives a transfer from creation to a terminal status.
//
// The saga keeps no state of its own. Every event it receives is mapped by Plan
// to the commands that move the transfer one step forward; the outcome of those
// commands comes back later as another event.
package saga

import (
	"context"
	"fmt"

	"go-ledger/accounts"
	"go-ledger/events"
	"go-ledger/transfers"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reaction lists the commands to issue for one event.
type Reaction struct {
	Accounts  []accounts.Command
	Transfers []transfers.Command
}

// Terminal reports whether the reaction ends the transfer.
func (r Reaction) Terminal() bool {
	for _, cmd := range r.Transfers {
		switch cmd.(type) {
		case transfers.MarkTransferFailed, transfers.MarkTransferCompleted:
			return true
		}
	}
	return false
}

// Plan is the transfer transition table.
func Plan(event events.Event) Reaction {
	switch e := event.(type) {
	case events.TransferCreated:
		return Reaction{Accounts: []accounts.Command{
			accounts.DebitSourceAccount{TransferID: e.TransferID, Source: e.From, Destination: e.To, Amount: e.Amount},
		}}

	case events.SourceAccountNotFound:
		return failed(e.TransferID)

	case events.SourceAccountDebitRejected:
		return failed(e.TransferID)

	case events.SourceAccountDebited:
		return Reaction{Accounts: []accounts.Command{
			accounts.CreditDestinationAccount{TransferID: e.TransferID, Source: e.Source, Destination: e.Destination, Amount: e.Amount},
		}}

	case events.DestinationAccountNotFound:
		return compensated(e.TransferID, e.Source, e.Amount)

	case events.DestinationAccountCreditRejected:
		return compensated(e.TransferID, e.Source, e.Amount)

	case events.DestinationAccountCredited:
		return Reaction{Transfers: []transfers.Command{
			transfers.MarkTransferCompleted{TransferID: e.TransferID},
		}}
	}

	// MoneyReturnFailed, TransferFailed and TransferCompleted end the protocol.
	return Reaction{}
}

func failed(transferID string) Reaction {
	return Reaction{Transfers: []transfers.Command{
		transfers.MarkTransferFailed{TransferID: transferID},
	}}
}

// compensated returns the debited amount to the source and fails the transfer.
func compensated(transferID, source string, amount decimal.Decimal) Reaction {
	r := failed(transferID)
	r.Accounts = []accounts.Command{
		accounts.ReturnMoneyBack{TransferID: transferID, AccountID: source, Amount: amount},
	}
	return r
}

type accountsSender interface {
	Tell(cmd accounts.Command) error
}

type transfersSender interface {
	Tell(cmd transfers.Command) error
}

// Saga consumes one event subscription and issues planned commands without
// waiting for them.
type Saga struct {
	accounts     accountsSender
	transfers    transfersSender
	subscription *events.Subscription
	logger       *zap.Logger
}

func New(accounts accountsSender, transfers transfersSender, subscription *events.Subscription, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		accounts:     accounts,
		transfers:    transfers,
		subscription: subscription,
		logger:       logger.Named("saga"),
	}
}

// Run reacts to events until ctx is done.
func (s *Saga) Run(ctx context.Context) error {
	return s.subscription.Run(ctx, s.react)
}

func (s *Saga) react(_ context.Context, event events.Event) {
	s.logger.Info("transfer saga got an event",
		zap.String("type", fmt.Sprintf("%T", event)),
		zap.String("transferId", event.CorrelationID()),
	)

	reaction := Plan(event)
	if reaction.Terminal() {
		s.logger.Debug("transfer reached its last step", zap.String("transferId", event.CorrelationID()))
	}
	for _, cmd := range reaction.Accounts {
		if err := s.accounts.Tell(cmd); err != nil {
			s.logger.Error("accounts command not sent",
				zap.String("transferId", event.CorrelationID()),
				zap.String("command", fmt.Sprintf("%T", cmd)),
				zap.Error(err),
			)
		}
	}
	for _, cmd := range reaction.Transfers {
		if err := s.transfers.Tell(cmd); err != nil {
			s.logger.Error("transfers command not sent",
				zap.String("transferId", event.CorrelationID()),
				zap.String("command", fmt.Sprintf("%T", cmd)),
				zap.Error(err),
			)
		}
	}
}
