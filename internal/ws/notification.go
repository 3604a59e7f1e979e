package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	rdbPkg "github.com/krishanu7/sinkorsail/pkg/redis"
	wsPkg "github.com/krishanu7/sinkorsail/pkg/websocket"
	"github.com/redis/go-redis/v9"
)

// NotificationWorker forwards events from the redis notification channel
// to the player each event names.
type NotificationWorker struct {
	RedisClient *redis.Client
	GeneralHub  *wsPkg.GeneralHub
	logger      *log.Logger
}

func NewNotificationWorker(rdb *redis.Client, hub *wsPkg.GeneralHub, logger *log.Logger) *NotificationWorker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &NotificationWorker{
		RedisClient: rdb,
		GeneralHub:  hub,
		logger:      logger,
	}
}

// Run consumes notifications until ctx is done. ready, if not nil, is
// closed once the subscription is active.
func (w *NotificationWorker) Run(ctx context.Context, ready chan<- struct{}) error {
	w.logger.Info("Notification worker starting...")
	pubsub := w.RedisClient.Subscribe(ctx, rdbPkg.NotificationChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return errors.New("notification channel closed")
			}
			w.deliver(msg.Payload)
		}
	}
}

func (w *NotificationWorker) deliver(payload string) {
	var notification struct {
		Type   string `json:"type"`
		Player string `json:"player"`
	}
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		w.logger.Warn("Failed to unmarshal notification", "err", err)
		return
	}

	if !w.GeneralHub.SendToClient(notification.Player, []byte(payload)) {
		w.logger.Debug("Player not reachable for notification", "player", notification.Player, "type", notification.Type)
		return
	}
	w.logger.Debug("Sent notification", "player", notification.Player, "type", notification.Type)
}
