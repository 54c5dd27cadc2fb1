package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"delicassy/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "delicassy:notifications:"

// Redis relays notifications over Redis pub/sub so every API replica
// can serve the live feed.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedis(client *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

func channel(userID string) string {
	return channelPrefix + userID
}

func (b *Redis) Publish(ctx context.Context, note domain.Notification) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := b.client.Publish(ctx, channel(note.UserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (b *Redis) Subscribe(ctx context.Context, userID string) (<-chan domain.Notification, func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	pubsub := b.client.Subscribe(ctx, channel(userID))
	// Wait for the subscription to be confirmed so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan domain.Notification, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var note domain.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &note); err != nil {
					b.logger.Warn("Discarding malformed notification", zap.Error(err))
					continue
				}

				select {
				case out <- note:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, cancel, nil
}

// Close is a no-op; the client is owned by the server
func (b *Redis) Close() error {
	return nil
}
