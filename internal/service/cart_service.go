package service

import (
	"context"

	"delicassy/internal/domain"
	"delicassy/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService defines the interface for cart business logic
type CartService interface {
	InitCart(ctx context.Context, cart *domain.Cart) (string, error)
	GetCart(ctx context.Context, id string) (*domain.Cart, error)
	UpdateCart(ctx context.Context, id string, items []domain.CartItem) error
}

type cartService struct {
	cartRepo repository.CartRepository
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, logger *zap.Logger) CartService {
	return &cartService{cartRepo: cartRepo, logger: logger}
}

// InitCart persists a new cart. Carts without an owner get a fresh
// session id.
func (s *cartService) InitCart(ctx context.Context, cart *domain.Cart) (string, error) {
	if err := domain.Validate(cart); err != nil {
		return "", invalid(err)
	}

	if cart.UserID == "" && cart.SessionID == "" {
		cart.SessionID = uuid.NewString()
	}

	id, err := s.cartRepo.Create(ctx, cart)
	if err != nil {
		return "", err
	}

	s.logger.Info("Cart initialised", zap.String("cart_id", id), zap.Int("items", len(cart.Items)))
	return id, nil
}

func (s *cartService) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	return s.cartRepo.FindByID(ctx, id)
}

// UpdateCart replaces the cart's items wholesale
func (s *cartService) UpdateCart(ctx context.Context, id string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	if err := domain.Validate(&domain.Cart{Items: items}); err != nil {
		return invalid(err)
	}

	if err := s.cartRepo.ReplaceItems(ctx, id, items); err != nil {
		return err
	}

	s.logger.Debug("Cart updated", zap.String("cart_id", id), zap.Int("items", len(items)))
	return nil
}
