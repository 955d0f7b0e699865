package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Provider delivers a serialized notification to every subscriber of a
// topic. Topics are orthogonal to chat rooms.
type Provider interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

const topicChannelPrefix = "notify:"

// RedisProvider fans notifications out over Redis pub/sub. Mobile
// gateways subscribe to `notify:<topic>` channels and forward to device
// push tokens.
type RedisProvider struct {
	client *redis.Client
}

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

func (p *RedisProvider) Publish(ctx context.Context, topic string, payload []byte) error {
	return p.client.Publish(ctx, topicChannelPrefix+topic, payload).Err()
}
