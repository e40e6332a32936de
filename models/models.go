package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a ledger account
type Account struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int             `json:"version"`
}

// NewAccount returns an empty account created at the given time
func NewAccount(id string, createdAt time.Time) *Account {
	return &Account{
		ID:        id,
		CreatedAt: createdAt,
		Balance:   decimal.Zero,
	}
}

// Deposit adds cash to the account.
func (a *Account) Deposit(amount decimal.Decimal) AccountFault {
	return a.add(amount)
}

// Withdraw takes cash from the account.
func (a *Account) Withdraw(amount decimal.Decimal) AccountFault {
	return a.subtract(amount)
}

// Debit takes the transfer amount from a source account.
func (a *Account) Debit(amount decimal.Decimal) AccountFault {
	return a.subtract(amount)
}

// Credit adds the transfer amount to a destination account.
func (a *Account) Credit(amount decimal.Decimal) AccountFault {
	return a.add(amount)
}

func (a *Account) add(amount decimal.Decimal) AccountFault {
	if !amount.IsPositive() {
		return WrongAmount{Amount: amount}
	}
	a.Balance = a.Balance.Add(amount)
	a.Version++
	return nil
}

func (a *Account) subtract(amount decimal.Decimal) AccountFault {
	if !amount.IsPositive() {
		return WrongAmount{Amount: amount}
	}
	if a.Balance.LessThan(amount) {
		return NotEnoughMoney{AccountID: a.ID}
	}
	a.Balance = a.Balance.Sub(amount)
	a.Version++
	return nil
}

// EntryKind names the movement recorded by an Entry
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
	EntryDebit      EntryKind = "debit"
	EntryCredit     EntryKind = "credit"
	EntryRefund     EntryKind = "refund"
)

// Entry represents one balance movement on an account statement
type Entry struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"accountId"`
	TransferID string          `json:"transferId,omitempty"`
	Kind       EntryKind       `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// TransferStatus is the lifecycle state of a transfer
type TransferStatus string

const (
	TransferStarted   TransferStatus = "STARTED"
	TransferFailed    TransferStatus = "FAILED"
	TransferCompleted TransferStatus = "COMPLETED"
)

// IsTerminal reports whether no further status change is allowed.
func (s TransferStatus) IsTerminal() bool {
	return s == TransferFailed || s == TransferCompleted
}

// Transfer represents a money transfer between two accounts
type Transfer struct {
	ID     string          `json:"id"`
	FromID string          `json:"from"`
	ToID   string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Status TransferStatus  `json:"status"`
}

// NewTransfer returns a transfer in the STARTED state
func NewTransfer(id, fromID, toID string, amount decimal.Decimal) *Transfer {
	return &Transfer{
		ID:     id,
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Status: TransferStarted,
	}
}

// MarkFailed moves the transfer to FAILED. It reports false and leaves the
// status untouched when the transfer is already terminal.
func (t *Transfer) MarkFailed() bool {
	return t.transition(TransferFailed)
}

// MarkCompleted moves the transfer to COMPLETED. It reports false and leaves
// the status untouched when the transfer is already terminal.
func (t *Transfer) MarkCompleted() bool {
	return t.transition(TransferCompleted)
}

func (t *Transfer) transition(to TransferStatus) bool {
	if t.Status.IsTerminal() {
		return false
	}
	t.Status = to
	return true
}
