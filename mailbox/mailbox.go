// Package mailbox provides the single-consumer message queue that every actor
// in the ledger is built on.
//
// A Mailbox is fed by any number of producers and drained by exactly one worker
// loop (Run). Messages are handled strictly in arrival order, one at a time, so
// whatever state the handler closes over needs no further locking.
package mailbox

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by Send once the mailbox has been closed.
	ErrClosed = errors.New("mailbox closed")
	// ErrAlreadyRunning is returned by Run when another worker owns the mailbox.
	ErrAlreadyRunning = errors.New("mailbox worker already running")
)

// Option configures a Mailbox.
type Option func(*options)

type options struct {
	capacity int
	logger   *zap.Logger
}

// WithCapacity bounds the queue for Send, which blocks while the queue is
// full. Post ignores the bound. Zero or a negative value keeps Send unbounded.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		o.capacity = capacity
	}
}

// WithLogger sets the logger used to report recovered handler panics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Mailbox is a FIFO queue consumed by a single worker.
type Mailbox[M any] struct {
	name     string
	logger   *zap.Logger
	capacity int

	mu      sync.Mutex
	pending []M
	// signal wakes the worker, space wakes a producer blocked on a full queue.
	signal chan struct{}
	space  chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
	running   atomic.Bool
}

// New returns an empty mailbox. Nothing is processed until Run is called.
func New[M any](name string, opts ...Option) *Mailbox[M] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Mailbox[M]{
		name:     name,
		logger:   o.logger.With(zap.String("mailbox", name)),
		capacity: o.capacity,
		signal:   make(chan struct{}, 1),
		space:    make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

// Name returns the name the mailbox was created with.
func (m *Mailbox[M]) Name() string {
	return m.name
}

// Send enqueues msg. On a bounded mailbox it waits for room until ctx is done.
func (m *Mailbox[M]) Send(ctx context.Context, msg M) error {
	for {
		if m.isClosed() {
			return ErrClosed
		}

		m.mu.Lock()
		if m.capacity <= 0 || len(m.pending) < m.capacity {
			m.pending = append(m.pending, msg)
			roomLeft := m.capacity <= 0 || len(m.pending) < m.capacity
			m.mu.Unlock()

			notify(m.signal)
			if roomLeft {
				notify(m.space)
			}
			return nil
		}
		m.mu.Unlock()

		select {
		case <-m.space:
		case <-m.closed:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Post enqueues msg ignoring the capacity. It never blocks, which is what
// actor-to-actor traffic relies on to stay free of cyclic waits.
func (m *Mailbox[M]) Post(msg M) error {
	if m.isClosed() {
		return ErrClosed
	}

	m.mu.Lock()
	m.pending = append(m.pending, msg)
	m.mu.Unlock()

	notify(m.signal)
	return nil
}

// Len reports how many messages are waiting to be handled.
func (m *Mailbox[M]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Close stops the worker after the message in flight. Queued messages are dropped.
func (m *Mailbox[M]) Close() {
	m.closeOnce.Do(func() {
		close(m.closed)
	})
}

// Run is the worker loop. It hands messages to handle one at a time, in the
// order they were sent, until ctx is done or the mailbox is closed.
func (m *Mailbox[M]) Run(ctx context.Context, handle func(context.Context, M)) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.running.Store(false)

	for {
		msg, ok := m.receive(ctx)
		if !ok {
			return nil
		}
		m.dispatch(ctx, handle, msg)
	}
}

func (m *Mailbox[M]) receive(ctx context.Context) (M, bool) {
	var zero M

	for {
		if msg, ok := m.pop(); ok {
			return msg, true
		}
		select {
		case <-m.signal:
		case <-m.closed:
			return zero, false
		case <-ctx.Done():
			return zero, false
		}
	}
}

func (m *Mailbox[M]) pop() (M, bool) {
	var zero M

	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return zero, false
	}
	msg := m.pending[0]
	m.pending[0] = zero
	m.pending = m.pending[1:]
	m.mu.Unlock()

	notify(m.space)
	return msg, true
}

func (m *Mailbox[M]) isClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (m *Mailbox[M]) dispatch(ctx context.Context, handle func(context.Context, M), msg M) {
	defer func() {
		if recovered := recover(); recovered != nil {
			m.logger.Error("mailbox handler panicked",
				zap.Any("panic", recovered),
				zap.Stack("stack"),
			)
		}
	}()

	handle(ctx, msg)
}
