package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// QueueDispatcher hands messages to the queue publisher. Failures are logged
// and dropped; the request that triggered the message has already committed.
type QueueDispatcher struct {
	publisher notification.Publisher
	logger    logger.Interface
}

var _ notification.Dispatcher = (*QueueDispatcher)(nil)

func NewQueueDispatcher(publisher notification.Publisher, logger logger.Interface) *QueueDispatcher {
	return &QueueDispatcher{publisher: publisher, logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, msg *notification.Message) {
	if msg == nil {
		return
	}
	if err := d.publisher.Enqueue(ctx, msg); err != nil {
		d.logger.Errorw("failed to enqueue notification",
			"kind", msg.Kind,
			"ticket_id", msg.TicketID,
			"error", err,
		)
		return
	}
	d.logger.Debugw("notification enqueued", "id", msg.ID, "kind", msg.Kind, "ticket_id", msg.TicketID)
}
