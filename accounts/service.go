package accounts

import (
	"context"

	"go-ledger/mailbox"
	"go-ledger/models"

	"github.com/shopspring/decimal"
)

// Service is the request/response face of the accounts actor.
type Service struct {
	actor *Actor
}

func NewService(actor *Actor) *Service {
	return &Service{actor: actor}
}

func (s *Service) Create(ctx context.Context, id string) (models.AccountResult, error) {
	reply := mailbox.NewReply[models.AccountResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, CreateAccount{AccountID: id, Reply: reply}, reply)
}

func (s *Service) GetBalance(ctx context.Context, id string) (models.AccountResult, error) {
	reply := mailbox.NewReply[models.AccountResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, GetBalance{AccountID: id, Reply: reply}, reply)
}

func (s *Service) GetStatement(ctx context.Context, id string) (models.AccountResult, error) {
	reply := mailbox.NewReply[models.AccountResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, GetStatement{AccountID: id, Reply: reply}, reply)
}

func (s *Service) DepositCash(ctx context.Context, id string, amount decimal.Decimal) (models.AccountResult, error) {
	reply := mailbox.NewReply[models.AccountResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, DepositMoney{AccountID: id, Amount: amount, Reply: reply}, reply)
}

func (s *Service) WithdrawCash(ctx context.Context, id string, amount decimal.Decimal) (models.AccountResult, error) {
	reply := mailbox.NewReply[models.AccountResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, WithdrawMoney{AccountID: id, Amount: amount, Reply: reply}, reply)
}
