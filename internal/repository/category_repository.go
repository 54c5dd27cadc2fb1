package repository

import (
	"context"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (string, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	store store.Store
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(s store.Store) CategoryRepository {
	return &categoryRepository{store: s}
}

// Create persists a category and returns its id
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (string, error) {
	id, err := r.store.Insert(ctx, store.Categories, category)
	if err != nil {
		return "", fmt.Errorf("failed to create category: %w", err)
	}
	return id, nil
}

// List retrieves all categories, unpaginated
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := r.store.Find(ctx, store.Categories, store.Query{}, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
