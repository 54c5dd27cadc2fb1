package repository

import (
	"context"
	"errors"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access.
// Orders are immutable once written.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

type orderRepository struct {
	store store.Store
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(s store.Store) OrderRepository {
	return &orderRepository{store: s}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (string, error) {
	id, err := r.store.Insert(ctx, store.Orders, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var orders []domain.Order
	if err := r.store.Find(ctx, store.Orders, store.ByID(id), &orders); err != nil {
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return &orders[0], nil
}
