package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-ledger/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLedger(t *testing.T, opts Options) *Ledger {
	t.Helper()

	l := New(opts, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return l
}

func openAccount(t *testing.T, l *Ledger, balance int64) string {
	t.Helper()

	id := uuid.NewString()
	result, err := l.Accounts.Create(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, models.AccountCreated{AccountID: id}, result)
	if balance > 0 {
		result, err = l.Accounts.DepositCash(context.Background(), id, decimal.NewFromInt(balance))
		require.NoError(t, err)
		require.Equal(t, models.Success{}, result)
	}
	return id
}

func balanceOf(t *testing.T, l *Ledger, id string) decimal.Decimal {
	t.Helper()

	result, err := l.Accounts.GetBalance(context.Background(), id)
	require.NoError(t, err)
	balance, ok := result.(models.AccountBalance)
	require.True(t, ok, "unexpected result %#v", result)
	return balance.Balance
}

func transfer(t *testing.T, l *Ledger, from, to string, amount int64) string {
	t.Helper()

	id := uuid.NewString()
	result, err := l.Transfers.Create(context.Background(), id, from, to, decimal.NewFromInt(amount))
	require.NoError(t, err)
	require.Equal(t, models.TransferCreated{TransferID: id}, result)
	return id
}

func awaitStatus(t *testing.T, l *Ledger, id string, want models.TransferStatus) {
	t.Helper()

	require.Eventually(t, func() bool {
		result, err := l.Transfers.Status(context.Background(), id)
		if err != nil {
			return false
		}
		status, ok := result.(models.TransferStatusResult)
		return ok && status.Status == want
	}, 2*time.Second, 5*time.Millisecond)
}

func awaitBalance(t *testing.T, l *Ledger, id string, want int64) {
	t.Helper()

	require.Eventually(t, func() bool {
		return balanceOf(t, l, id).Equal(decimal.NewFromInt(want))
	}, 2*time.Second, 5*time.Millisecond)
}

func TestTransferCompletes(t *testing.T) {
	l := startLedger(t, Options{})
	from := openAccount(t, l, 100)
	to := openAccount(t, l, 0)

	id := transfer(t, l, from, to, 40)

	awaitStatus(t, l, id, models.TransferCompleted)
	assert.True(t, balanceOf(t, l, from).Equal(decimal.NewFromInt(60)))
	assert.True(t, balanceOf(t, l, to).Equal(decimal.NewFromInt(40)))
}

func TestTransferFromMissingAccountFails(t *testing.T) {
	l := startLedger(t, Options{})
	to := openAccount(t, l, 10)

	id := transfer(t, l, "ghost", to, 40)

	awaitStatus(t, l, id, models.TransferFailed)
	assert.True(t, balanceOf(t, l, to).Equal(decimal.NewFromInt(10)))
}

func TestTransferWithInsufficientFundsFails(t *testing.T) {
	l := startLedger(t, Options{})
	from := openAccount(t, l, 10)
	to := openAccount(t, l, 0)

	id := transfer(t, l, from, to, 50)

	awaitStatus(t, l, id, models.TransferFailed)
	assert.True(t, balanceOf(t, l, from).Equal(decimal.NewFromInt(10)))
	assert.True(t, balanceOf(t, l, to).IsZero())
}

func TestTransferToMissingAccountIsCompensated(t *testing.T) {
	l := startLedger(t, Options{})
	from := openAccount(t, l, 100)

	id := transfer(t, l, from, "ghost", 40)

	awaitStatus(t, l, id, models.TransferFailed)
	awaitBalance(t, l, from, 100)

	result, err := l.Accounts.GetStatement(context.Background(), from)
	require.NoError(t, err)
	statement, ok := result.(models.AccountStatement)
	require.True(t, ok)
	require.Len(t, statement.Entries, 3)
	assert.Equal(t, models.EntryDebit, statement.Entries[1].Kind)
	assert.Equal(t, models.EntryRefund, statement.Entries[2].Kind)
	assert.Equal(t, id, statement.Entries[2].TransferID)
}

func TestConcurrentTransfersKeepMoneyConserved(t *testing.T) {
	l := startLedger(t, Options{MailboxCapacity: 4, EventBuffer: 4})
	a := openAccount(t, l, 1000)
	b := openAccount(t, l, 1000)

	ids := make(chan string, 40)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ids <- transfer(t, l, a, b, 30)
		}()
		go func() {
			defer wg.Done()
			ids <- transfer(t, l, b, a, 20)
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		awaitStatus(t, l, id, models.TransferCompleted)
	}
	assert.True(t, balanceOf(t, l, a).Equal(decimal.NewFromInt(800)))
	assert.True(t, balanceOf(t, l, b).Equal(decimal.NewFromInt(1200)))
}

func TestDuplicateTransferIDIsRejected(t *testing.T) {
	l := startLedger(t, Options{})
	from := openAccount(t, l, 100)
	to := openAccount(t, l, 0)
	id := transfer(t, l, from, to, 10)

	result, err := l.Transfers.Create(context.Background(), id, from, to, decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.Equal(t, models.TransferFailure{Fault: models.TransferAlreadyExists{TransferID: id}}, result)
	awaitStatus(t, l, id, models.TransferCompleted)
	assert.True(t, balanceOf(t, l, from).Equal(decimal.NewFromInt(90)))
}
