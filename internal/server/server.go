package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"delicassy/internal/config"
	custommiddleware "delicassy/internal/middleware"
	"delicassy/internal/notify"
	"delicassy/internal/schema"
	"delicassy/internal/service"
	"delicassy/internal/store"
	"delicassy/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config   *config.Config
	logger   *zap.Logger
	store    store.Store
	broker   notify.Broker
	redis    *redis.Client
	services *service.Services
}

// NewServer wires the API on top of an opened store. Redis is only dialled
// when rate limiting or the redis notification broker is enabled.
func NewServer(cfg *config.Config, logger *zap.Logger, s store.Store) (*Server, error) {
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled || cfg.Notify.Broker == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis not reachable", zap.String("addr", redisClient.Options().Addr), zap.Error(err))
		}
		cancel()
	}

	broker, err := notify.New(cfg, redisClient, logger)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}

	secret := jwtSecret(cfg, logger)
	services := service.New(s, broker, secret, time.Duration(cfg.JWT.AccessExpiry)*time.Minute, logger)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      newRouter(cfg, logger, s, services, redisClient, secret),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:   cfg,
		logger:   logger,
		store:    s,
		broker:   broker,
		redis:    redisClient,
		services: services,
	}

	return server, nil
}

// Services exposes the wired services, used by the seed loader
func (s *Server) Services() *service.Services {
	return s.services
}

func newRouter(
	cfg *config.Config,
	logger *zap.Logger,
	s store.Store,
	services *service.Services,
	redisClient *redis.Client,
	secret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	if cfg.RateLimit.Enabled && redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "delicassy:ratelimit",
		}, logger))
	}

	authMiddleware := custommiddleware.AuthMiddleware(secret, logger)
	guard := custommiddleware.WriteGuard(cfg.Auth.ProtectCatalog, secret, logger)

	transport.NewSystemHandler(s, cfg.Store.URL != "" || cfg.Store.Driver == "memory", schema.Default(), logger).RegisterRoutes(router)
	transport.NewCatalogHandler(services.Catalog, logger).RegisterRoutes(router, guard)
	transport.NewCartHandler(services.Cart, logger).RegisterRoutes(router)
	transport.NewCheckoutHandler(services.Checkout, logger).RegisterRoutes(router)
	transport.NewContentHandler(services.Content, logger).RegisterRoutes(router, guard)
	transport.NewUserHandler(services.Users, logger).RegisterRoutes(router, authMiddleware)

	return router
}

// jwtSecret falls back to a per-process secret so tokens still work in
// development. Tokens then do not survive a restart.
func jwtSecret(cfg *config.Config, logger *zap.Logger) string {
	if cfg.JWT.Secret != "" {
		return cfg.JWT.Secret
	}
	logger.Warn("JWT_SECRET is not set, using an ephemeral secret")
	return uuid.NewString()
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			s.logger.Error("Failed to close notification broker", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Close(ctx); err != nil {
		s.logger.Error("Failed to close document store", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}
