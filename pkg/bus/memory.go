package bus

import (
	"context"
	"fmt"

	"chat-reactions-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MemoryPublisher publishes onto an in-process watermill channel. Used for
// single-node deployments and tests; Subscribe gives access to the stream.
type MemoryPublisher struct {
	pubSub *gochannel.GoChannel
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		),
	}
}

func (p *MemoryPublisher) Publish(ctx context.Context, event events.Event) error {
	data, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Name(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	for k, v := range event.Headers() {
		msg.Metadata.Set(k, v)
	}

	return p.pubSub.Publish(event.RoutingKey(), msg)
}

// Subscribe returns messages published under one routing key.
func (p *MemoryPublisher) Subscribe(ctx context.Context, routingKey string) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, routingKey)
}

func (p *MemoryPublisher) Close() error {
	return p.pubSub.Close()
}
