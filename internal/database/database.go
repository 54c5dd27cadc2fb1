package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"delicassy/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service owns the shared postgres connection pool
type Service struct {
	db *sql.DB
}

// DSN builds a pgx connection string. An explicit URL wins over the
// individual DB_* settings.
func DSN(rawURL string, cfg config.DatabaseConfig) string {
	if rawURL != "" {
		return rawURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {"disable"}, "search_path": {cfg.Schema}}.Encode(),
	}
	return u.String()
}

// New opens the pool and verifies it with a ping
func New(ctx context.Context, dsn string) (*Service, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB returns the underlying pool
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health reports pool statistics
func (s *Service) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	stats["wait_count"] = fmt.Sprint(dbStats.WaitCount)

	return stats
}

func (s *Service) Close() error {
	return s.db.Close()
}
