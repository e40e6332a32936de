package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountFault describes why an account command could not complete.
type AccountFault interface {
	error
	isAccountFault()
}

type AccountNotFound struct{ AccountID string }

type AccountAlreadyExists struct{ AccountID string }

type NotEnoughMoney struct{ AccountID string }

type WrongAmount struct{ Amount decimal.Decimal }

func (f AccountNotFound) Error() string {
	return fmt.Sprintf("Account '%s' not found", f.AccountID)
}

func (f AccountAlreadyExists) Error() string {
	return fmt.Sprintf("Account '%s' already exists", f.AccountID)
}

func (f NotEnoughMoney) Error() string {
	return fmt.Sprintf("Not enough money in account '%s'", f.AccountID)
}

func (f WrongAmount) Error() string {
	return fmt.Sprintf("Got wrong amount '%s'", f.Amount.String())
}

func (AccountNotFound) isAccountFault()      {}
func (AccountAlreadyExists) isAccountFault() {}
func (NotEnoughMoney) isAccountFault()       {}
func (WrongAmount) isAccountFault()          {}

// AccountResult is the outcome of a caller-visible account command.
type AccountResult interface {
	isAccountResult()
}

type Success struct{}

type AccountCreated struct{ AccountID string }

type AccountBalance struct {
	AccountID string
	Balance   decimal.Decimal
}

type AccountStatement struct {
	AccountID string
	Entries   []Entry
}

type AccountFailure struct{ Fault AccountFault }

func (Success) isAccountResult()          {}
func (AccountCreated) isAccountResult()   {}
func (AccountBalance) isAccountResult()   {}
func (AccountStatement) isAccountResult() {}
func (AccountFailure) isAccountResult()   {}

// TransferFault describes why a transfer command could not complete.
type TransferFault interface {
	error
	isTransferFault()
}

type TransferNotFound struct{ TransferID string }

type TransferAlreadyExists struct{ TransferID string }

func (f TransferNotFound) Error() string {
	return fmt.Sprintf("Transfer '%s' not found", f.TransferID)
}

func (f TransferAlreadyExists) Error() string {
	return fmt.Sprintf("Transfer '%s' already exists", f.TransferID)
}

func (TransferNotFound) isTransferFault()      {}
func (TransferAlreadyExists) isTransferFault() {}

// TransferResult is the outcome of a caller-visible transfer command.
type TransferResult interface {
	isTransferResult()
}

type TransferCreated struct{ TransferID string }

type TransferStatusResult struct {
	TransferID string
	Status     TransferStatus
}

type TransferDetails struct{ Transfer Transfer }

type TransferFailure struct{ Fault TransferFault }

func (TransferCreated) isTransferResult()      {}
func (TransferStatusResult) isTransferResult() {}
func (TransferDetails) isTransferResult()      {}
func (TransferFailure) isTransferResult()      {}
