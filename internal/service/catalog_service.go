package service

import (
	"context"
	"errors"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/repository"

	"go.uber.org/zap"
)

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (string, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (string, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error)
	AddReview(ctx context.Context, review *domain.Review) (string, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	reviewRepo   repository.ReviewRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		reviewRepo:   reviewRepo,
		logger:       logger,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, category *domain.Category) (string, error) {
	if err := domain.Validate(category); err != nil {
		return "", invalid(err)
	}

	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return "", err
	}

	s.logger.Info("Category created", zap.String("category_id", id), zap.String("slug", category.Slug))
	return id, nil
}

// ListProducts filters by exact category slug and free text. Both
// filters are optional and combine with AND.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) (string, error) {
	product.ApplyDefaults()
	if err := domain.Validate(product); err != nil {
		return "", invalid(err)
	}

	existing, err := s.productRepo.FindBySlug(ctx, product.Slug)
	if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: %s", ErrSlugTaken, product.Slug)
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return "", err
	}

	s.logger.Info("Product created", zap.String("product_id", id), zap.String("slug", product.Slug))
	return id, nil
}

// GetProductBySlug returns the product with all of its reviews
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.ProductDetail, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product.ApplyDefaults()

	reviews, err := s.reviewRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ProductDetail{Product: *product, Reviews: reviews}, nil
}

// AddReview stores a review for an existing product. Nothing is written
// when the product does not exist.
func (s *catalogService) AddReview(ctx context.Context, review *domain.Review) (string, error) {
	if err := domain.Validate(review); err != nil {
		return "", invalid(err)
	}

	if _, err := s.productRepo.FindByID(ctx, review.ProductID); err != nil {
		return "", err
	}

	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return "", err
	}

	s.logger.Info("Review added", zap.String("review_id", id), zap.String("product_id", review.ProductID))
	return id, nil
}
