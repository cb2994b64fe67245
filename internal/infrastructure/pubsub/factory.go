package pubsub

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/config"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Queue is both ends of a notification queue.
type Queue interface {
	notification.Publisher
	notification.Consumer
}

// NewPublisher builds the producer side for cfg.Driver. redisClient may be
// nil unless the driver is redis. memory returns a fresh in-process queue,
// which is only useful when the same value is also consumed.
func NewPublisher(cfg *config.NotificationConfig, redisClient *redis.Client, log logger.Interface) (notification.Publisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis notification driver requires a redis client")
		}
		return NewRedisQueue(redisClient, cfg.Queue, log), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, log)
	case "memory":
		return NewMemoryQueue(0, log), nil
	case "noop", "":
		return NewNoopQueue(log), nil
	default:
		return nil, fmt.Errorf("unsupported notification driver: %s", cfg.Driver)
	}
}

// NewConsumer builds the worker side for cfg.Driver.
func NewConsumer(cfg *config.NotificationConfig, redisClient *redis.Client, log logger.Interface) (notification.Consumer, error) {
	switch strings.ToLower(cfg.Driver) {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis notification driver requires a redis client")
		}
		return NewRedisQueue(redisClient, cfg.Queue, log), nil
	case "amqp":
		return NewAMQPConsumer(cfg.AMQPURL, cfg.Exchange, cfg.Queue, log)
	case "memory":
		return NewMemoryQueue(0, log), nil
	case "noop", "":
		return NewNoopQueue(log), nil
	default:
		return nil, fmt.Errorf("unsupported notification driver: %s", cfg.Driver)
	}
}

// NewRedisClient connects using cfg. The caller owns the client.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
