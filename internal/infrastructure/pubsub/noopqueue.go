package pubsub

import (
	"context"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// NoopQueue drops every message. Consume waits for ctx.
type NoopQueue struct {
	logger logger.Interface
}

func NewNoopQueue(log logger.Interface) *NoopQueue {
	return &NoopQueue{logger: log}
}

func (q *NoopQueue) Enqueue(_ context.Context, msg *notification.Message) error {
	q.logger.Debugw("notification discarded", "kind", msg.Kind, "ticket_id", msg.TicketID)
	return nil
}

func (q *NoopQueue) Consume(ctx context.Context, _ notification.Handler) error {
	<-ctx.Done()
	return nil
}

func (q *NoopQueue) Close() error {
	return nil
}
