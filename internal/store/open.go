package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delicassy/internal/config"
	"delicassy/internal/database"

	"go.uber.org/zap"
)

// ErrUnknownDriver is returned for an unsupported STORE_DRIVER value
var ErrUnknownDriver = errors.New("unknown store driver")

const defaultConnectTimeout = 5 * time.Second

// Open connects the configured backend once at startup. Connection
// failures do not abort startup: the returned store is a disconnected
// handle whose operations fail with ErrUnavailable.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) Store {
	timeout := cfg.Store.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s, err := connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Document store unavailable",
			zap.String("driver", cfg.Store.Driver),
			zap.Error(err),
		)
		return Disconnected(cfg.Store.Name, err)
	}

	logger.Info("Document store connected",
		zap.String("driver", s.Driver()),
		zap.String("database", s.Name()),
	)
	return s
}

func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return NewMemory(cfg.Store.Name), nil

	case "mongo", "mongodb", "":
		if cfg.Store.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		return NewMongo(ctx, cfg.Store.URL, cfg.Store.Name)

	case "postgres", "postgresql":
		svc, err := database.New(ctx, database.DSN(cfg.Store.URL, cfg.Database))
		if err != nil {
			return nil, err
		}
		logger.Info("Database health check", zap.Any("health", svc.Health(ctx)))

		if cfg.Store.Migrate {
			if err := database.RunMigrations(svc.DB(), logger); err != nil {
				svc.Close()
				return nil, err
			}
		}
		return NewPostgres(svc.DB(), cfg.Store.Name), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
	}
}

type disconnectedStore struct {
	name  string
	cause error
}

// Disconnected returns a store that was never connected
func Disconnected(name string, cause error) Store {
	return &disconnectedStore{name: name, cause: cause}
}

// IsConnected reports whether s is backed by a live connection
func IsConnected(s Store) bool {
	_, disconnected := s.(*disconnectedStore)
	return s != nil && !disconnected
}

func (s *disconnectedStore) Driver() string { return "none" }

func (s *disconnectedStore) Name() string { return s.name }

func (s *disconnectedStore) err() error {
	if s.cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, s.cause)
}

func (s *disconnectedStore) Ping(ctx context.Context) error { return s.err() }

func (s *disconnectedStore) Collections(ctx context.Context) ([]string, error) {
	return nil, s.err()
}

func (s *disconnectedStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	return "", s.err()
}

func (s *disconnectedStore) Find(ctx context.Context, collection string, q Query, out any) error {
	return s.err()
}

func (s *disconnectedStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	return false, s.err()
}

func (s *disconnectedStore) Increment(ctx context.Context, collection, id, field string, delta int) (bool, error) {
	return false, s.err()
}

func (s *disconnectedStore) Close(ctx context.Context) error { return nil }
