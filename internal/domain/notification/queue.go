package notification

import "context"

// Publisher puts messages on the notification queue.
type Publisher interface {
	Enqueue(ctx context.Context, msg *Message) error
	Close() error
}

// Handler processes one dequeued message. Returned errors are logged by the
// consumer; the message is not redelivered.
type Handler func(ctx context.Context, msg *Message) error

// Consumer reads messages until ctx is cancelled.
type Consumer interface {
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

// Dispatcher is the application-facing side: enqueue after commit and never
// fail the request because of it.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *Message)
}
