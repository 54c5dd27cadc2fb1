// Package notify fans newly created notifications out to live subscribers.
package notify

import (
	"context"
	"errors"
	"fmt"

	"delicassy/internal/config"
	"delicassy/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// subscriberBuffer is the number of notifications queued per subscriber
// before further ones are dropped
const subscriberBuffer = 16

var ErrClosed = errors.New("broker closed")

// Broker publishes notifications to the subscribers of their user
type Broker interface {
	Publish(ctx context.Context, note domain.Notification) error
	// Subscribe returns a channel of notifications for userID. The
	// channel is closed once cancel is called or ctx is done.
	Subscribe(ctx context.Context, userID string) (notes <-chan domain.Notification, cancel func(), err error)
	Close() error
}

// New selects the broker named by cfg.Notify.Broker. The redis broker
// requires a client.
func New(cfg *config.Config, client *redis.Client, logger *zap.Logger) (Broker, error) {
	switch cfg.Notify.Broker {
	case "", "memory":
		return NewHub(logger), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis broker requires a redis client")
		}
		return NewRedis(client, logger), nil
	default:
		return nil, fmt.Errorf("unknown notification broker %q", cfg.Notify.Broker)
	}
}
