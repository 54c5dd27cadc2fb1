package repository

import (
	"context"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (string, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type reviewRepository struct {
	store store.Store
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(s store.Store) ReviewRepository {
	return &reviewRepository{store: s}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (string, error) {
	id, err := r.store.Insert(ctx, store.Reviews, review)
	if err != nil {
		return "", fmt.Errorf("failed to create review: %w", err)
	}
	return id, nil
}

// ListByProduct returns the product's reviews in insertion order
func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := r.store.Find(ctx, store.Reviews, store.Where("product_id", productID), &reviews); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
