package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountDepositAndWithdraw(t *testing.T) {
	account := NewAccount("acc-1", time.Now())

	require.Nil(t, account.Deposit(decimal.NewFromInt(50)))
	require.Nil(t, account.Withdraw(decimal.NewFromInt(20)))

	assert.True(t, account.Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, account.Version)
}

func TestAccountRejectsNonPositiveAmounts(t *testing.T) {
	account := NewAccount("acc-1", time.Now())

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		assert.Equal(t, WrongAmount{Amount: amount}, account.Deposit(amount))
		assert.Equal(t, WrongAmount{Amount: amount}, account.Withdraw(amount))
		assert.Equal(t, WrongAmount{Amount: amount}, account.Debit(amount))
		assert.Equal(t, WrongAmount{Amount: amount}, account.Credit(amount))
	}
	assert.True(t, account.Balance.IsZero())
	assert.Zero(t, account.Version)
}

func TestAccountWithdrawMoreThanBalance(t *testing.T) {
	account := NewAccount("acc-1", time.Now())
	require.Nil(t, account.Credit(decimal.NewFromInt(10)))

	fault := account.Debit(decimal.NewFromInt(50))

	assert.Equal(t, NotEnoughMoney{AccountID: "acc-1"}, fault)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(10)))
}

func TestTransferTerminalStatusIsFinal(t *testing.T) {
	transfer := NewTransfer("tr-1", "a", "b", decimal.NewFromInt(1))
	assert.Equal(t, TransferStarted, transfer.Status)

	assert.True(t, transfer.MarkCompleted())
	assert.False(t, transfer.MarkFailed())
	assert.False(t, transfer.MarkCompleted())
	assert.Equal(t, TransferCompleted, transfer.Status)
}

func TestFaultMessages(t *testing.T) {
	assert.EqualError(t, AccountNotFound{AccountID: "1"}, "Account '1' not found")
	assert.EqualError(t, TransferAlreadyExists{TransferID: "t"}, "Transfer 't' already exists")
	assert.EqualError(t, WrongAmount{Amount: decimal.NewFromInt(-1)}, "Got wrong amount '-1'")
}
