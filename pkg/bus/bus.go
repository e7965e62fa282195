// Package bus selects and builds the event publisher the notifier writes to.
package bus

import (
	"context"
	"fmt"

	"chat-reactions-be/pkg/events"
	pktNats "chat-reactions-be/pkg/nats"
)

const (
	DriverNats   = "nats"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

type Options struct {
	Driver       string
	NatsURL      string
	NatsStream   string
	RedisURL     string
	RedisChannel string
}

func New(opts Options) (Publisher, error) {
	switch opts.Driver {
	case DriverNats, "":
		pub, err := pktNats.NewPublisher(opts.NatsURL, opts.NatsStream)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case DriverRedis:
		pub, err := NewRedisPublisher(opts.RedisURL, opts.RedisChannel)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case DriverMemory:
		return NewMemoryPublisher(), nil
	default:
		return nil, fmt.Errorf("unknown bus driver %q", opts.Driver)
	}
}
