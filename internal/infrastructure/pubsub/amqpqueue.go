package pubsub

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

const notificationBindingKey = "notification.*"

// AMQPPublisher publishes to a durable topic exchange with routing key
// notification.<kind>.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
	logger   logger.Interface
}

var _ notification.Publisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(url, exchange string, log logger.Interface) (*AMQPPublisher, error) {
	conn, ch, err := dialExchange(url, exchange)
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange, logger: log}, nil
}

func (p *AMQPPublisher) Enqueue(ctx context.Context, msg *notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, msg.Kind.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debugw("notification published",
		"exchange", p.exchange,
		"routing_key", msg.Kind.RoutingKey(),
		"message_id", msg.ID,
	)
	return nil
}

func (p *AMQPPublisher) Close() error {
	return closeAMQP(p.conn, p.channel)
}

// AMQPConsumer binds a durable queue to every notification routing key and
// consumes with auto-ack.
type AMQPConsumer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	logger   logger.Interface
}

var _ notification.Consumer = (*AMQPConsumer)(nil)

func NewAMQPConsumer(url, exchange, queue string, log logger.Interface) (*AMQPConsumer, error) {
	conn, ch, err := dialExchange(url, exchange)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAMQP(conn, ch)
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(q.Name, notificationBindingKey, exchange, false, nil); err != nil {
		_ = closeAMQP(conn, ch)
		return nil, fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}

	return &AMQPConsumer{conn: conn, channel: ch, exchange: exchange, queue: q.Name, logger: log}, nil
}

func (c *AMQPConsumer) Consume(ctx context.Context, handler notification.Handler) error {
	deliveries, err := c.channel.Consume(c.queue, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.queue, err)
	}

	c.logger.Infow("amqp notification consumer started", "exchange", c.exchange, "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("amqp delivery channel closed")
			}
			deliver(ctx, c.logger, d.Body, handler)
		}
	}
}

func (c *AMQPConsumer) Close() error {
	return closeAMQP(c.conn, c.channel)
}

func dialExchange(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = closeAMQP(conn, ch)
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}

func closeAMQP(conn *amqp.Connection, ch *amqp.Channel) error {
	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
