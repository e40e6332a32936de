package transfers

import (
	"context"
	"fmt"

	"go-ledger/events"
	"go-ledger/mailbox"
	"go-ledger/models"
	"go-ledger/store"

	"go.uber.org/zap"
)

// Actor serializes every transfer command through its mailbox.
type Actor struct {
	transfers *store.Transfers
	events    events.Publisher
	mailbox   *mailbox.Mailbox[Command]
	logger    *zap.Logger
}

// NewActor wires an actor to the store it will own exclusively.
func NewActor(transfers *store.Transfers, publisher events.Publisher, logger *zap.Logger, opts ...mailbox.Option) *Actor {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("transfers")

	return &Actor{
		transfers: transfers,
		events:    publisher,
		mailbox:   mailbox.New[Command]("transfers", append([]mailbox.Option{mailbox.WithLogger(logger)}, opts...)...),
		logger:    logger,
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
	a.logger.Debug("transfers actor got a command", zap.String("command", fmt.Sprintf("%T", cmd)))

	switch cmd := cmd.(type) {
	case CreateTransfer:
		if _, found := a.transfers.GetTransfer(cmd.TransferID); found {
			cmd.Reply.Resolve(models.TransferFailure{Fault: models.TransferAlreadyExists{TransferID: cmd.TransferID}})
			return
		}
		a.transfers.AddTransfer(models.NewTransfer(cmd.TransferID, cmd.From, cmd.To, cmd.Amount))
		a.events.Publish(ctx, events.TransferCreated{
			TransferID: cmd.TransferID,
			From:       cmd.From,
			To:         cmd.To,
			Amount:     cmd.Amount,
		})
		cmd.Reply.Resolve(models.TransferCreated{TransferID: cmd.TransferID})

	case GetTransferStatus:
		transfer, found := a.transfers.GetTransfer(cmd.TransferID)
		if !found {
			cmd.Reply.Resolve(models.TransferFailure{Fault: models.TransferNotFound{TransferID: cmd.TransferID}})
			return
		}
		cmd.Reply.Resolve(models.TransferStatusResult{TransferID: transfer.ID, Status: transfer.Status})

	case GetTransfer:
		transfer, found := a.transfers.GetTransfer(cmd.TransferID)
		if !found {
			cmd.Reply.Resolve(models.TransferFailure{Fault: models.TransferNotFound{TransferID: cmd.TransferID}})
			return
		}
		cmd.Reply.Resolve(models.TransferDetails{Transfer: *transfer})

	case MarkTransferFailed:
		a.mark(ctx, cmd.TransferID, models.TransferFailed)

	case MarkTransferCompleted:
		a.mark(ctx, cmd.TransferID, models.TransferCompleted)

	default:
		a.logger.Error("unknown transfers command", zap.String("command", fmt.Sprintf("%T", cmd)))
	}
}

func (a *Actor) mark(ctx context.Context, transferID string, status models.TransferStatus) {
	transfer, found := a.transfers.GetTransfer(transferID)
	if !found {
		a.logger.Warn("cannot mark unknown transfer",
			zap.String("transferId", transferID),
			zap.String("status", string(status)),
		)
		return
	}

	var changed bool
	if status == models.TransferFailed {
		changed = transfer.MarkFailed()
	} else {
		changed = transfer.MarkCompleted()
	}
	if !changed {
		a.logger.Warn("transfer already in a terminal status",
			zap.String("transferId", transferID),
			zap.String("status", string(transfer.Status)),
			zap.String("requested", string(status)),
		)
		return
	}

	a.logger.Info("transfer finished",
		zap.String("transferId", transferID),
		zap.String("status", string(status)),
	)
	if status == models.TransferFailed {
		a.events.Publish(ctx, events.TransferFailed{TransferID: transferID})
	} else {
		a.events.Publish(ctx, events.TransferCompleted{TransferID: transferID})
	}
}
