package usecases

import (
	"context"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Worker drains the notification queue. Each message is attempted once.
type Worker struct {
	consumer notification.Consumer
	send     *SendNotificationUseCase
	logger   logger.Interface
}

func NewWorker(consumer notification.Consumer, send *SendNotificationUseCase, logger logger.Interface) *Worker {
	return &Worker{consumer: consumer, send: send, logger: logger}
}

// Run blocks until ctx is cancelled or the consumer stops.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Infow("notification worker started")
	err := w.consumer.Consume(ctx, w.send.Execute)
	if err != nil && ctx.Err() == nil {
		w.logger.Errorw("notification consumer stopped", "error", err)
		return err
	}
	w.logger.Infow("notification worker stopped")
	return nil
}
