package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// searchFields are matched by the free-text product query
var searchFields = []string{"title", "description"}

// ProductFilter narrows a product listing. Empty fields are ignored.
type ProductFilter struct {
	Category string
	Query    string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (string, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) error
}

type productRepository struct {
	store store.Store
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(s store.Store) ProductRepository {
	return &productRepository{store: s}
}

// Create persists a product and returns its id
func (r *productRepository) Create(ctx context.Context, product *domain.Product) (string, error) {
	id, err := r.store.Insert(ctx, store.Products, product)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// List retrieves products by exact category slug and a case-insensitive
// substring of title or description
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	q := store.Query{}

	if filter.Category != "" {
		q.Equals = map[string]string{"category": filter.Category}
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		q.Match = &store.TextMatch{Fields: searchFields, Term: term}
	}

	products := []domain.Product{}
	if err := r.store.Find(ctx, store.Products, q, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindBySlug retrieves a product by its URL key
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := store.Where("slug", slug)
	q.Limit = 1

	return r.findOne(ctx, q, "slug")
}

// FindByID retrieves a product by id
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, store.ByID(id), "ID")
}

// FindByIDs retrieves every product whose id is listed, in one lookup
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	products := []domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}

	if err := r.store.Find(ctx, store.Products, store.Query{IDs: ids}, &products); err != nil {
		return nil, fmt.Errorf("failed to find products by ID: %w", err)
	}
	return products, nil
}

// AdjustStock adds delta to the product's stock
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	matched, err := r.store.Increment(ctx, store.Products, id, "stock", delta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if !matched {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) findOne(ctx context.Context, q store.Query, by string) (*domain.Product, error) {
	var products []domain.Product
	if err := r.store.Find(ctx, store.Products, q, &products); err != nil {
		return nil, fmt.Errorf("failed to find product by %s: %w", by, err)
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}
	return &products[0], nil
}
