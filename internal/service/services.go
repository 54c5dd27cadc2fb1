package service

import (
	"time"

	"delicassy/internal/notify"
	"delicassy/internal/repository"
	"delicassy/internal/store"

	"go.uber.org/zap"
)

// Services bundles every service built over one store
type Services struct {
	Catalog  CatalogService
	Cart     CartService
	Checkout CheckoutService
	Content  ContentService
	Users    UserService
}

// New wires the repositories and services on top of s. broker may be nil,
// in which case notifications are stored but not pushed.
func New(s store.Store, broker notify.Broker, jwtSecret string, tokenExpiration time.Duration, logger *zap.Logger) *Services {
	products := repository.NewProductRepository(s)
	carts := repository.NewCartRepository(s)

	return &Services{
		Catalog: NewCatalogService(
			repository.NewCategoryRepository(s),
			products,
			repository.NewReviewRepository(s),
			logger,
		),
		Cart:     NewCartService(carts, logger),
		Checkout: NewCheckoutService(carts, products, repository.NewOrderRepository(s), logger),
		Content:  NewContentService(repository.NewContentRepository(s), broker, logger),
		Users:    NewUserService(repository.NewUserRepository(s), jwtSecret, tokenExpiration, logger),
	}
}
