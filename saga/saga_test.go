package saga

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-ledger/accounts"
	"go-ledger/events"
	"go-ledger/transfers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	amount := decimal.NewFromInt(40)

	tests := []struct {
		name     string
		event    events.Event
		want     Reaction
		terminal bool
	}{
		{
			name:  "transfer created debits the source",
			event: events.TransferCreated{TransferID: "tr", From: "a", To: "b", Amount: amount},
			want: Reaction{Accounts: []accounts.Command{
				accounts.DebitSourceAccount{TransferID: "tr", Source: "a", Destination: "b", Amount: amount},
			}},
		},
		{
			name:     "missing source fails the transfer",
			event:    events.SourceAccountNotFound{TransferID: "tr", AccountID: "a"},
			want:     Reaction{Transfers: []transfers.Command{transfers.MarkTransferFailed{TransferID: "tr"}}},
			terminal: true,
		},
		{
			name:     "rejected debit fails the transfer",
			event:    events.SourceAccountDebitRejected{TransferID: "tr", AccountID: "a"},
			want:     Reaction{Transfers: []transfers.Command{transfers.MarkTransferFailed{TransferID: "tr"}}},
			terminal: true,
		},
		{
			name:  "debited source credits the destination",
			event: events.SourceAccountDebited{TransferID: "tr", Source: "a", Destination: "b", Amount: amount},
			want: Reaction{Accounts: []accounts.Command{
				accounts.CreditDestinationAccount{TransferID: "tr", Source: "a", Destination: "b", Amount: amount},
			}},
		},
		{
			name:  "missing destination returns the money",
			event: events.DestinationAccountNotFound{TransferID: "tr", Source: "a", Amount: amount},
			want: Reaction{
				Accounts:  []accounts.Command{accounts.ReturnMoneyBack{TransferID: "tr", AccountID: "a", Amount: amount}},
				Transfers: []transfers.Command{transfers.MarkTransferFailed{TransferID: "tr"}},
			},
			terminal: true,
		},
		{
			name:  "rejected credit returns the money to the source",
			event: events.DestinationAccountCreditRejected{TransferID: "tr", Source: "a", AccountID: "b", Amount: amount},
			want: Reaction{
				Accounts:  []accounts.Command{accounts.ReturnMoneyBack{TransferID: "tr", AccountID: "a", Amount: amount}},
				Transfers: []transfers.Command{transfers.MarkTransferFailed{TransferID: "tr"}},
			},
			terminal: true,
		},
		{
			name:     "credited destination completes the transfer",
			event:    events.DestinationAccountCredited{TransferID: "tr", AccountID: "b"},
			want:     Reaction{Transfers: []transfers.Command{transfers.MarkTransferCompleted{TransferID: "tr"}}},
			terminal: true,
		},
		{
			name:  "failed refund is only observed",
			event: events.MoneyReturnFailed{TransferID: "tr", AccountID: "a", Amount: amount},
			want:  Reaction{},
		},
		{
			name:  "terminal notifications are only observed",
			event: events.TransferCompleted{TransferID: "tr"},
			want:  Reaction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.event)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.terminal, got.Terminal())
			assert.Equal(t, got, Plan(tt.event), "plan must be deterministic")
		})
	}
}

type recordingSender[C any] struct {
	mu   sync.Mutex
	sent []C
}

func (r *recordingSender[C]) Tell(cmd C) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, cmd)
	return nil
}

func (r *recordingSender[C]) commands() []C {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]C(nil), r.sent...)
}

func TestSagaSendsPlannedCommands(t *testing.T) {
	gateway := events.NewGateway()
	accountsSent := &recordingSender[accounts.Command]{}
	transfersSent := &recordingSender[transfers.Command]{}
	s := New(accountsSent, transfersSent, gateway.Subscribe("saga"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	amount := decimal.NewFromInt(5)
	gateway.Publish(ctx, events.TransferCreated{TransferID: "tr", From: "a", To: "b", Amount: amount})
	gateway.Publish(ctx, events.DestinationAccountNotFound{TransferID: "tr", Source: "a", Amount: amount})

	require.Eventually(t, func() bool {
		return len(accountsSent.commands()) == 2 && len(transfersSent.commands()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []accounts.Command{
		accounts.DebitSourceAccount{TransferID: "tr", Source: "a", Destination: "b", Amount: amount},
		accounts.ReturnMoneyBack{TransferID: "tr", AccountID: "a", Amount: amount},
	}, accountsSent.commands())
	assert.Equal(t, []transfers.Command{transfers.MarkTransferFailed{TransferID: "tr"}}, transfersSent.commands())

	cancel()
	assert.NoError(t, <-done)
}
