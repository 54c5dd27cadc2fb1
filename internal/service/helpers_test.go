package service

import (
	"context"
	"testing"

	"delicassy/internal/domain"
	"delicassy/internal/repository"
	"delicassy/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store    store.Store
	catalog  CatalogService
	carts    CartService
	checkout CheckoutService
	products repository.ProductRepository
	reviews  repository.ReviewRepository
}

func newFixture() *fixture {
	s := store.NewMemory("testdb")
	logger := zap.NewNop()

	categories := repository.NewCategoryRepository(s)
	products := repository.NewProductRepository(s)
	reviews := repository.NewReviewRepository(s)
	carts := repository.NewCartRepository(s)
	orders := repository.NewOrderRepository(s)

	return &fixture{
		store:    s,
		catalog:  NewCatalogService(categories, products, reviews, logger),
		carts:    NewCartService(carts, logger),
		checkout: NewCheckoutService(carts, products, orders, logger),
		products: products,
		reviews:  reviews,
	}
}

func (f *fixture) addProduct(t *testing.T, slug string, price float64, stock, fragility int) string {
	t.Helper()
	id, err := f.catalog.CreateProduct(context.Background(), &domain.Product{
		Title:           "Item " + slug,
		Slug:            slug,
		Description:     "Handmade " + slug,
		Price:           price,
		Category:        "glassware",
		Stock:           stock,
		FragilityRating: fragility,
	})
	require.NoError(t, err)
	return id
}

func testAddress() domain.Address {
	return domain.Address{
		FullName:   "Ada Lovelace",
		Line1:      "12 Crescent Row",
		City:       "London",
		PostalCode: "N1 9GU",
		Country:    "UK",
	}
}

func testPayment() domain.PaymentMethod {
	return domain.PaymentMethod{Method: "card", Last4: "4242"}
}

func newFixtureLogger() *zap.Logger {
	return zap.NewNop()
}
