// Package accounts owns the account store. All reads and writes go through a
// single actor so balance changes are applied one command at a time.
package accounts

import (
	"context"
	"fmt"
	"time"

	"go-ledger/events"
	"go-ledger/mailbox"
	"go-ledger/models"
	"go-ledger/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Actor serializes every account command through its mailbox.
type Actor struct {
	accounts *store.Accounts
	events   events.Publisher
	mailbox  *mailbox.Mailbox[Command]
	logger   *zap.Logger
	now      func() time.Time
}

// NewActor wires an actor to the store it will own exclusively.
func NewActor(accounts *store.Accounts, publisher events.Publisher, logger *zap.Logger, opts ...mailbox.Option) *Actor {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("accounts")

	return &Actor{
		accounts: accounts,
		events:   publisher,
		mailbox:  mailbox.New[Command]("accounts", append([]mailbox.Option{mailbox.WithLogger(logger)}, opts...)...),
		logger:   logger,
		now:      time.Now,
	}
}

// Run processes commands until ctx is done.
func (a *Actor) Run(ctx context.Context) error {
	return a.mailbox.Run(ctx, a.handle)
}

// Tell enqueues cmd without waiting for it to be processed. It never blocks,
// even when the mailbox is bounded.
func (a *Actor) Tell(cmd Command) error {
	return a.mailbox.Post(cmd)
}

// Close stops the actor.
func (a *Actor) Close() {
	a.mailbox.Close()
}

func (a *Actor) handle(ctx context.Context, cmd Command) {
	a.logger.Debug("accounts actor got a command", zap.String("command", fmt.Sprintf("%T", cmd)))

	switch cmd := cmd.(type) {
	case CreateAccount:
		if _, found := a.accounts.GetAccount(cmd.AccountID); found {
			cmd.Reply.Resolve(models.AccountFailure{Fault: models.AccountAlreadyExists{AccountID: cmd.AccountID}})
			return
		}
		a.accounts.AddAccount(models.NewAccount(cmd.AccountID, a.now()))
		cmd.Reply.Resolve(models.AccountCreated{AccountID: cmd.AccountID})

	case GetBalance:
		account, found := a.accounts.GetAccount(cmd.AccountID)
		if !found {
			cmd.Reply.Resolve(models.AccountFailure{Fault: models.AccountNotFound{AccountID: cmd.AccountID}})
			return
		}
		cmd.Reply.Resolve(models.AccountBalance{AccountID: account.ID, Balance: account.Balance})

	case GetStatement:
		if _, found := a.accounts.GetAccount(cmd.AccountID); !found {
			cmd.Reply.Resolve(models.AccountFailure{Fault: models.AccountNotFound{AccountID: cmd.AccountID}})
			return
		}
		cmd.Reply.Resolve(models.AccountStatement{AccountID: cmd.AccountID, Entries: a.accounts.GetEntries(cmd.AccountID)})

	case DepositMoney:
		cmd.Reply.Resolve(a.applyCash(cmd.AccountID, cmd.Amount, models.EntryDeposit))

	case WithdrawMoney:
		cmd.Reply.Resolve(a.applyCash(cmd.AccountID, cmd.Amount, models.EntryWithdrawal))

	case DebitSourceAccount:
		a.debitSource(ctx, cmd)

	case CreditDestinationAccount:
		a.creditDestination(ctx, cmd)

	case ReturnMoneyBack:
		a.returnMoneyBack(ctx, cmd)

	default:
		a.logger.Error("unknown accounts command", zap.String("command", fmt.Sprintf("%T", cmd)))
	}
}

func (a *Actor) applyCash(accountID string, amount decimal.Decimal, kind models.EntryKind) models.AccountResult {
	if !amount.IsPositive() {
		return models.AccountFailure{Fault: models.WrongAmount{Amount: amount}}
	}
	account, found := a.accounts.GetAccount(accountID)
	if !found {
		return models.AccountFailure{Fault: models.AccountNotFound{AccountID: accountID}}
	}

	var fault models.AccountFault
	if kind == models.EntryDeposit {
		fault = account.Deposit(amount)
	} else {
		fault = account.Withdraw(amount)
	}
	if fault != nil {
		return models.AccountFailure{Fault: fault}
	}

	a.record(accountID, "", kind, amount)
	return models.Success{}
}

func (a *Actor) debitSource(ctx context.Context, cmd DebitSourceAccount) {
	account, found := a.accounts.GetAccount(cmd.Source)
	if !found {
		a.events.Publish(ctx, events.SourceAccountNotFound{TransferID: cmd.TransferID, AccountID: cmd.Source})
		return
	}

	if fault := account.Debit(cmd.Amount); fault != nil {
		a.logger.Info("source account debit rejected",
			zap.String("transferId", cmd.TransferID),
			zap.String("accountId", cmd.Source),
			zap.Error(fault),
		)
		a.events.Publish(ctx, events.SourceAccountDebitRejected{TransferID: cmd.TransferID, AccountID: cmd.Source})
		return
	}

	a.record(cmd.Source, cmd.TransferID, models.EntryDebit, cmd.Amount)
	a.events.Publish(ctx, events.SourceAccountDebited{
		TransferID:  cmd.TransferID,
		Source:      cmd.Source,
		Destination: cmd.Destination,
		Amount:      cmd.Amount,
	})
}

func (a *Actor) creditDestination(ctx context.Context, cmd CreditDestinationAccount) {
	account, found := a.accounts.GetAccount(cmd.Destination)
	if !found {
		a.events.Publish(ctx, events.DestinationAccountNotFound{
			TransferID: cmd.TransferID,
			Source:     cmd.Source,
			Amount:     cmd.Amount,
		})
		return
	}

	if fault := account.Credit(cmd.Amount); fault != nil {
		a.logger.Warn("destination account credit rejected",
			zap.String("transferId", cmd.TransferID),
			zap.String("accountId", cmd.Destination),
			zap.Error(fault),
		)
		a.events.Publish(ctx, events.DestinationAccountCreditRejected{
			TransferID: cmd.TransferID,
			Source:     cmd.Source,
			AccountID:  cmd.Destination,
			Amount:     cmd.Amount,
		})
		return
	}

	a.record(cmd.Destination, cmd.TransferID, models.EntryCredit, cmd.Amount)
	a.events.Publish(ctx, events.DestinationAccountCredited{TransferID: cmd.TransferID, AccountID: cmd.Destination})
}

func (a *Actor) returnMoneyBack(ctx context.Context, cmd ReturnMoneyBack) {
	account, found := a.accounts.GetAccount(cmd.AccountID)
	if !found {
		a.logger.Error("money could not be returned",
			zap.String("transferId", cmd.TransferID),
			zap.String("accountId", cmd.AccountID),
			zap.String("amount", cmd.Amount.String()),
		)
		a.events.Publish(ctx, events.MoneyReturnFailed{
			TransferID: cmd.TransferID,
			AccountID:  cmd.AccountID,
			Amount:     cmd.Amount,
		})
		return
	}

	if fault := account.Credit(cmd.Amount); fault != nil {
		a.logger.Error("money return rejected",
			zap.String("transferId", cmd.TransferID),
			zap.String("accountId", cmd.AccountID),
			zap.Error(fault),
		)
		return
	}
	a.record(cmd.AccountID, cmd.TransferID, models.EntryRefund, cmd.Amount)
}

func (a *Actor) record(accountID, transferID string, kind models.EntryKind, amount decimal.Decimal) {
	a.accounts.AddEntry(models.Entry{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		TransferID: transferID,
		Kind:       kind,
		Amount:     amount,
		CreatedAt:  a.now(),
	})
}
