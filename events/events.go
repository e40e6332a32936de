package events

import (
	"github.com/shopspring/decimal"
)

// Event is a fact published after a command changed (or failed to change)
// ledger state. Every event is correlated to the transfer that caused it.
type Event interface {
	CorrelationID() string
	isEvent()
}

// TransferCreated starts the transfer protocol.
type TransferCreated struct {
	TransferID string
	From       string
	To         string
	Amount     decimal.Decimal
}

type SourceAccountNotFound struct {
	TransferID string
	AccountID  string
}

type SourceAccountDebited struct {
	TransferID  string
	Source      string
	Destination string
	Amount      decimal.Decimal
}

type SourceAccountDebitRejected struct {
	TransferID string
	AccountID  string
}

// DestinationAccountNotFound carries the source and amount so the debit can be
// returned.
type DestinationAccountNotFound struct {
	TransferID string
	Source     string
	Amount     decimal.Decimal
}

type DestinationAccountCredited struct {
	TransferID string
	AccountID  string
}

// DestinationAccountCreditRejected names the rejecting account in AccountID and
// the already debited account in Source.
type DestinationAccountCreditRejected struct {
	TransferID string
	Source     string
	AccountID  string
	Amount     decimal.Decimal
}

// MoneyReturnFailed reports a compensation that could not be applied because
// the account to refund is gone. Nothing retries it.
type MoneyReturnFailed struct {
	TransferID string
	AccountID  string
	Amount     decimal.Decimal
}

type TransferFailed struct {
	TransferID string
}

type TransferCompleted struct {
	TransferID string
}

func (e TransferCreated) CorrelationID() string                  { return e.TransferID }
func (e SourceAccountNotFound) CorrelationID() string            { return e.TransferID }
func (e SourceAccountDebited) CorrelationID() string             { return e.TransferID }
func (e SourceAccountDebitRejected) CorrelationID() string       { return e.TransferID }
func (e DestinationAccountNotFound) CorrelationID() string       { return e.TransferID }
func (e DestinationAccountCredited) CorrelationID() string       { return e.TransferID }
func (e DestinationAccountCreditRejected) CorrelationID() string { return e.TransferID }
func (e MoneyReturnFailed) CorrelationID() string                { return e.TransferID }
func (e TransferFailed) CorrelationID() string                   { return e.TransferID }
func (e TransferCompleted) CorrelationID() string                { return e.TransferID }

func (TransferCreated) isEvent()                  {}
func (SourceAccountNotFound) isEvent()            {}
func (SourceAccountDebited) isEvent()             {}
func (SourceAccountDebitRejected) isEvent()       {}
func (DestinationAccountNotFound) isEvent()       {}
func (DestinationAccountCredited) isEvent()       {}
func (DestinationAccountCreditRejected) isEvent() {}
func (MoneyReturnFailed) isEvent()                {}
func (TransferFailed) isEvent()                   {}
func (TransferCompleted) isEvent()                {}
