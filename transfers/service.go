package transfers

import (
	"context"

	"go-ledger/mailbox"
	"go-ledger/models"

	"github.com/shopspring/decimal"
)

// Service is the request/response face of the transfers actor.
type Service struct {
	actor *Actor
}

func NewService(actor *Actor) *Service {
	return &Service{actor: actor}
}

// Create registers a transfer. The money moves later, driven by the saga.
func (s *Service) Create(ctx context.Context, id, from, to string, amount decimal.Decimal) (models.TransferResult, error) {
	reply := mailbox.NewReply[models.TransferResult]()
	cmd := CreateTransfer{TransferID: id, From: from, To: to, Amount: amount, Reply: reply}
	return mailbox.Ask[Command](ctx, s.actor.mailbox, cmd, reply)
}

func (s *Service) Status(ctx context.Context, id string) (models.TransferResult, error) {
	reply := mailbox.NewReply[models.TransferResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, GetTransferStatus{TransferID: id, Reply: reply}, reply)
}

func (s *Service) Get(ctx context.Context, id string) (models.TransferResult, error) {
	reply := mailbox.NewReply[models.TransferResult]()
	return mailbox.Ask[Command](ctx, s.actor.mailbox, GetTransfer{TransferID: id, Reply: reply}, reply)
}
