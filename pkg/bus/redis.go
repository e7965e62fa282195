package bus

import (
	"context"
	"fmt"
	"log"

	"chat-reactions-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes every event on one pub/sub channel. The routing
// key and headers travel inside the message so subscribers can filter.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

type redisMessage struct {
	RoutingKey string            `json:"routing_key"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

func NewRedisPublisher(url, channel string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	return NewRedisPublisherFromClient(redis.NewClient(opt), channel), nil
}

func NewRedisPublisherFromClient(rdb *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event events.Event) error {
	body, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Name(), err)
	}

	payload, err := json.Marshal(redisMessage{
		RoutingKey: event.RoutingKey(),
		Headers:    event.Headers(),
		Body:       body,
	})
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to channel %s: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}
