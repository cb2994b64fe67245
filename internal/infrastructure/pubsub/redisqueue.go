// Package pubsub carries notification messages from the API to the worker.
// The redis driver is the default; amqp, memory and noop are selectable
// through notification.driver.
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

const defaultPopTimeout = 5 * time.Second

// RedisQueue is a list-backed queue: producers LPUSH, the worker BRPOPs.
// The client is shared with other components and is not closed here.
type RedisQueue struct {
	client     *redis.Client
	key        string
	popTimeout time.Duration
	logger     logger.Interface
}

var (
	_ notification.Publisher = (*RedisQueue)(nil)
	_ notification.Consumer  = (*RedisQueue)(nil)
)

func NewRedisQueue(client *redis.Client, key string, log logger.Interface) *RedisQueue {
	return &RedisQueue{
		client:     client,
		key:        key,
		popTimeout: defaultPopTimeout,
		logger:     log,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, msg *notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	q.logger.Debugw("notification enqueued",
		"queue", q.key,
		"message_id", msg.ID,
		"kind", msg.Kind,
	)
	return nil
}

// Consume blocks until ctx is cancelled. Undecodable payloads and handler
// failures are logged and dropped.
func (q *RedisQueue) Consume(ctx context.Context, handler notification.Handler) error {
	q.logger.Infow("redis notification consumer started", "queue", q.key)

	for {
		if ctx.Err() != nil {
			return nil
		}

		result, err := q.client.BRPop(ctx, q.popTimeout, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			q.logger.Errorw("failed to pop notification", "queue", q.key, "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		// BRPOP returns [key, value]
		if len(result) != 2 {
			continue
		}
		deliver(ctx, q.logger, []byte(result[1]), handler)
	}
}

func (q *RedisQueue) Close() error {
	return nil
}

func deliver(ctx context.Context, log logger.Interface, payload []byte, handler notification.Handler) {
	msg, err := notification.DecodeMessage(payload)
	if err != nil {
		log.Errorw("dropping malformed notification", "error", err)
		return
	}
	if err := handler(ctx, msg); err != nil {
		log.Errorw("notification handler failed",
			"message_id", msg.ID,
			"kind", msg.Kind,
			"ticket_id", msg.TicketID,
			"error", err,
		)
	}
}
