package observers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of *redis.Client used to publish events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisProgressPublisher publishes every progress event as JSON on a Redis channel.
type RedisProgressPublisher struct {
	client  Publisher
	channel string
}

type RedisProgressPublisherDependencies struct {
	Client  Publisher
	Channel string
}

func NewRedisProgressPublisher(deps RedisProgressPublisherDependencies) *RedisProgressPublisher {
	return &RedisProgressPublisher{
		client:  deps.Client,
		channel: deps.Channel,
	}
}

// NewRedisClient connects to addr. Connection errors surface on the first publish.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (p *RedisProgressPublisher) HandleEvent(ctx context.Context, event domain.ProgressEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event to %s: %w", event.Type, p.channel, err)
	}

	return nil
}
