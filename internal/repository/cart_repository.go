package repository

import (
	"context"
	"errors"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, id string, items []domain.CartItem) error
}

type cartRepository struct {
	store store.Store
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(s store.Store) CartRepository {
	return &cartRepository{store: s}
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) (string, error) {
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	id, err := r.store.Insert(ctx, store.Carts, cart)
	if err != nil {
		return "", fmt.Errorf("failed to create cart: %w", err)
	}
	return id, nil
}

// FindByID retrieves a cart. Malformed ids fail with store.ErrInvalidID.
func (r *cartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	var carts []domain.Cart
	if err := r.store.Find(ctx, store.Carts, store.ByID(id), &carts); err != nil {
		return nil, fmt.Errorf("failed to find cart by ID: %w", err)
	}
	if len(carts) == 0 {
		return nil, ErrCartNotFound
	}

	cart := &carts[0]
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

// ReplaceItems overwrites the whole item list
func (r *cartRepository) ReplaceItems(ctx context.Context, id string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}

	matched, err := r.store.Update(ctx, store.Carts, id, map[string]any{"items": items})
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if !matched {
		return ErrCartNotFound
	}
	return nil
}
