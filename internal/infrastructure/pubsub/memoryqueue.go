package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
)

// MemoryQueue is an in-process queue for tests and single-process setups.
// Messages are passed through the JSON encoding so consumers see the same
// shape as with the external drivers.
type MemoryQueue struct {
	ch     chan []byte
	mu     sync.RWMutex
	closed bool
	logger logger.Interface
}

var (
	_ notification.Publisher = (*MemoryQueue)(nil)
	_ notification.Consumer  = (*MemoryQueue)(nil)
)

func NewMemoryQueue(size int, log logger.Interface) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{ch: make(chan []byte, size), logger: log}
}

// Enqueue never blocks; a full buffer returns ErrQueueFull.
func (q *MemoryQueue) Enqueue(ctx context.Context, msg *notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := msg.Encode()
	if err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Consume returns when ctx is cancelled or the queue is closed and drained.
func (q *MemoryQueue) Consume(ctx context.Context, handler notification.Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-q.ch:
			if !ok {
				return nil
			}
			deliver(ctx, q.logger, payload, handler)
		}
	}
}

// Len reports the number of buffered messages.
func (q *MemoryQueue) Len() int {
	return len(q.ch)
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	return nil
}
