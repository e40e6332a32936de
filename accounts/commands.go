package accounts

import (
	"go-ledger/mailbox"
	"go-ledger/models"

	"github.com/shopspring/decimal"
)

// Command is a request handled by the accounts actor.
type Command interface {
	isCommand()
}

type CreateAccount struct {
	AccountID string
	Reply     *mailbox.Reply[models.AccountResult]
}

type GetBalance struct {
	AccountID string
	Reply     *mailbox.Reply[models.AccountResult]
}

type GetStatement struct {
	AccountID string
	Reply     *mailbox.Reply[models.AccountResult]
}

type DepositMoney struct {
	AccountID string
	Amount    decimal.Decimal
	Reply     *mailbox.Reply[models.AccountResult]
}

type WithdrawMoney struct {
	AccountID string
	Amount    decimal.Decimal
	Reply     *mailbox.Reply[models.AccountResult]
}

// DebitSourceAccount is issued by the transfer saga. Its outcome is published
// as an event instead of being replied.
type DebitSourceAccount struct {
	TransferID  string
	Source      string
	Destination string
	Amount      decimal.Decimal
}

// CreditDestinationAccount is issued by the transfer saga.
type CreditDestinationAccount struct {
	TransferID  string
	Source      string
	Destination string
	Amount      decimal.Decimal
}

// ReturnMoneyBack compensates a debit. It is best effort and never retried.
type ReturnMoneyBack struct {
	TransferID string
	AccountID  string
	Amount     decimal.Decimal
}

func (CreateAccount) isCommand()            {}
func (GetBalance) isCommand()               {}
func (GetStatement) isCommand()             {}
func (DepositMoney) isCommand()             {}
func (WithdrawMoney) isCommand()            {}
func (DebitSourceAccount) isCommand()       {}
func (CreditDestinationAccount) isCommand() {}
func (ReturnMoneyBack) isCommand()          {}
