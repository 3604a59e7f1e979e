package redis

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// NotificationChannel carries game events to the notification sockets.
const NotificationChannel = "notifications"

func NewRedisClient(addr, password string) (*redis.Client, error) {
	if addr == "" {
		addr = "localhost:6379" // fallback for local dev
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := rdb.Ping(Ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Info("Connected to Redis", "addr", addr)
	return rdb, nil
}

// Publisher sends JSON payloads on a redis channel.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, payload []byte) error {
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}
	return nil
}
