package repository

import (
	"context"
	"strings"
	"testing"

	"delicassy/internal/domain"
	"delicassy/internal/store"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(slug, title, category string, stock int) *domain.Product {
	return &domain.Product{
		Title:           title,
		Slug:            slug,
		Description:     "Handmade " + slug,
		Price:           10,
		Category:        category,
		Stock:           stock,
		FragilityRating: 3,
	}
}

func TestProductRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(store.NewMemory("testdb"))

	for _, p := range []*domain.Product{
		newProduct("tulip", "Crystal Tulip Vase", "glassware", 1),
		newProduct("cup", "Porcelain Cup", "ceramics", 1),
		newProduct("bowl", "Glass Bowl", "glassware", 1),
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	slugs := func(filter ProductFilter) []string {
		products, err := repo.List(ctx, filter)
		require.NoError(t, err)
		out := []string{}
		for _, p := range products {
			out = append(out, p.Slug)
		}
		return out
	}

	assert.Equal(t, []string{"tulip", "cup", "bowl"}, slugs(ProductFilter{}))
	assert.Equal(t, []string{"tulip", "bowl"}, slugs(ProductFilter{Category: "glassware"}))
	assert.Equal(t, []string{"bowl"}, slugs(ProductFilter{Category: "glassware", Query: "  BOWL "}))
	assert.Equal(t, []string{"cup"}, slugs(ProductFilter{Query: "handmade cup"}))
	assert.Empty(t, slugs(ProductFilter{Category: "textiles"}))
}

func TestProperty_SearchIgnoresCase(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("any case of a title substring finds the product", prop.ForAll(
		func(word string, upper bool) bool {
			ctx := context.Background()
			repo := NewProductRepository(store.NewMemory("testdb"))
			if _, err := repo.Create(ctx, newProduct("item", "Fine "+word+" piece", "misc", 1)); err != nil {
				return false
			}

			term := strings.ToLower(word)
			if upper {
				term = strings.ToUpper(word)
			}
			products, err := repo.List(ctx, ProductFilter{Query: term})
			return err == nil && len(products) == 1
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestProductRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(store.NewMemory("testdb"))

	id, err := repo.Create(ctx, newProduct("tulip", "Tulip", "glassware", 5))
	require.NoError(t, err)

	bySlug, err := repo.FindBySlug(ctx, "tulip")
	require.NoError(t, err)
	assert.Equal(t, id, bySlug.ID)

	_, err = repo.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = repo.FindByID(ctx, "bad")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	batch, err := repo.FindByIDs(ctx, []string{id, store.NewID()})
	require.NoError(t, err)
	assert.Len(t, batch, 1)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	require.NoError(t, repo.AdjustStock(ctx, id, -2))
	p, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)

	assert.ErrorIs(t, repo.AdjustStock(ctx, store.NewID(), -1), ErrProductNotFound)
}

func TestUserRepositoryEmailsAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemory("testdb"))

	id, err := repo.Create(ctx, &domain.User{Name: "Ada", Email: "Ada@Example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.COM", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	user, err := repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = repo.FindByID(ctx, store.NewID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCartRepositoryNormalisesItems(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(store.NewMemory("testdb"))

	id, err := repo.Create(ctx, &domain.Cart{SessionID: "s1"})
	require.NoError(t, err)

	cart, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)

	require.NoError(t, repo.ReplaceItems(ctx, id, []domain.CartItem{{ProductID: "p", Quantity: 2}}))
	require.NoError(t, repo.ReplaceItems(ctx, id, nil))

	cart, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	assert.ErrorIs(t, repo.ReplaceItems(ctx, store.NewID(), nil), ErrCartNotFound)
}

func TestContentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(store.NewMemory("testdb"))

	about, err := repo.FindAbout(ctx)
	require.NoError(t, err)
	assert.Nil(t, about)

	_, err = repo.CreateNotification(ctx, &domain.Notification{UserID: "u1", Kind: "restock", Title: "t", Body: "b"})
	require.NoError(t, err)

	notes, err := repo.ListNotifications(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	notes, err = repo.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}
