package notify

import (
	"context"
	"sync"

	"delicassy/internal/domain"

	"go.uber.org/zap"
)

type subscriber struct {
	ch   chan domain.Notification
	done chan struct{}
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.ch)
		close(s.done)
	})
}

// Hub is an in-process broker. Subscribers only see notifications
// published by the same process.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*subscriber]struct{}),
		logger: logger,
	}
}

func (h *Hub) Publish(ctx context.Context, note domain.Notification) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrClosed
	}

	for sub := range h.subs[note.UserID] {
		select {
		case sub.ch <- note:
		default:
			h.logger.Warn("Dropping notification for slow subscriber",
				zap.String("user_id", note.UserID),
				zap.String("notification_id", note.ID),
			)
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context, userID string) (<-chan domain.Notification, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, nil, ErrClosed
	}

	sub := &subscriber{
		ch:   make(chan domain.Notification, subscriberBuffer),
		done: make(chan struct{}),
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[userID], sub)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
		h.mu.Unlock()
		sub.close()
	}

	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()

	return sub.ch, cancel, nil
}

// Subscribers returns the number of live subscriptions for userID
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for _, subs := range h.subs {
		for sub := range subs {
			sub.close()
		}
	}
	h.subs = nil
	return nil
}
