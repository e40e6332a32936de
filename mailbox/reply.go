package mailbox

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrReplyResolved is the panic value raised when a Reply is resolved twice.
var ErrReplyResolved = errors.New("reply already resolved")

// Reply is a one-shot completion handle carried by a command. The worker that
// owns the command resolves it exactly once; the caller awaits it.
type Reply[T any] struct {
	ch       chan T
	resolved atomic.Bool
}

// NewReply returns an unresolved Reply.
func NewReply[T any]() *Reply[T] {
	return &Reply[T]{ch: make(chan T, 1)}
}

// Resolve fulfills the reply. Resolving twice is a programming error and panics.
func (r *Reply[T]) Resolve(value T) {
	if !r.resolved.CompareAndSwap(false, true) {
		panic(ErrReplyResolved)
	}
	r.ch <- value
}

// Await blocks until the reply is resolved or ctx is done.
func (r *Reply[T]) Await(ctx context.Context) (T, error) {
	select {
	case value := <-r.ch:
		return value, nil
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("await reply: %w", ctx.Err())
	}
}

// Ask sends msg and waits for its reply.
func Ask[M any, T any](ctx context.Context, m *Mailbox[M], msg M, reply *Reply[T]) (T, error) {
	if err := m.Send(ctx, msg); err != nil {
		var zero T
		return zero, fmt.Errorf("send to %s: %w", m.name, err)
	}
	return reply.Await(ctx)
}
