package transfers

import (
	"go-ledger/mailbox"
	"go-ledger/models"

	"github.com/shopspring/decimal"
)

// Command is a request handled by the transfers actor.
type Command interface {
	isCommand()
}

type CreateTransfer struct {
	TransferID string
	From       string
	To         string
	Amount     decimal.Decimal
	Reply      *mailbox.Reply[models.TransferResult]
}

type GetTransferStatus struct {
	TransferID string
	Reply      *mailbox.Reply[models.TransferResult]
}

type GetTransfer struct {
	TransferID string
	Reply      *mailbox.Reply[models.TransferResult]
}

// MarkTransferFailed and MarkTransferCompleted are issued by the saga and
// produce no reply.
type MarkTransferFailed struct {
	TransferID string
}

type MarkTransferCompleted struct {
	TransferID string
}

func (CreateTransfer) isCommand()        {}
func (GetTransferStatus) isCommand()     {}
func (GetTransfer) isCommand()           {}
func (MarkTransferFailed) isCommand()    {}
func (MarkTransferCompleted) isCommand() {}
