package service

import (
	"context"
	"testing"

	"delicassy/internal/domain"
	"delicassy/internal/repository"
	"delicassy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) checkoutCart(t *testing.T, items []domain.CartItem, shipping domain.ShippingOption) (*CheckoutResult, error) {
	t.Helper()
	cartID, err := f.carts.InitCart(context.Background(), &domain.Cart{Items: items})
	require.NoError(t, err)

	return f.checkout.Checkout(context.Background(), CheckoutInput{
		CartID:          cartID,
		ShippingAddress: testAddress(),
		Payment:         testPayment(),
		Shipping:        shipping,
	})
}

func TestCheckoutWorkedExample(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	vase := f.addProduct(t, "vase", 10, 5, 3)

	result, err := f.checkoutCart(t, []domain.CartItem{{ProductID: vase, Quantity: 2}}, domain.ShippingOption{Insured: true})
	require.NoError(t, err)

	assert.Equal(t, 35.20, result.AmountTotal)
	assert.Equal(t, domain.OrderStatusCreated, result.Status)
	assert.True(t, store.ValidID(result.OrderID))

	order, err := f.checkout.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.AmountSubtotal)
	assert.Equal(t, 14.0, order.AmountShipping)
	assert.Equal(t, 1.2, order.AmountInsurance)
	assert.Equal(t, 35.2, order.AmountTotal)
	assert.Equal(t, "5-7 business days", order.EstimatedDelivery)
	assert.Equal(t, "Ada Lovelace", order.ShippingAddress.FullName)

	product, err := f.products.FindByID(ctx, vase)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)
}

func TestCheckoutBatchesRepeatedProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	vase := f.addProduct(t, "vase", 12.5, 10, 1)
	bowl := f.addProduct(t, "bowl", 4, 10, 5)

	result, err := f.checkoutCart(t, []domain.CartItem{
		{ProductID: vase, Quantity: 1},
		{ProductID: bowl, Quantity: 3},
		{ProductID: vase, Quantity: 2},
	}, domain.ShippingOption{PremiumPackaging: true})
	require.NoError(t, err)

	// subtotal 49.50, avg fragility 7/3, shipping 9 + 4/3 * 2.5 = 12.33, fee 14
	assert.Equal(t, 75.83, result.AmountTotal)

	product, err := f.products.FindByID(ctx, vase)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.checkoutCart(t, nil, domain.ShippingOption{Insured: true})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUnknownCart(t *testing.T) {
	f := newFixture()

	_, err := f.checkout.Checkout(context.Background(), CheckoutInput{
		CartID:          store.NewID(),
		ShippingAddress: testAddress(),
		Payment:         testPayment(),
	})
	assert.ErrorIs(t, err, repository.ErrCartNotFound)

	_, err = f.checkout.Checkout(context.Background(), CheckoutInput{
		CartID:          "bogus",
		ShippingAddress: testAddress(),
		Payment:         testPayment(),
	})
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestCheckoutMissingProductWritesNoOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	vase := f.addProduct(t, "vase", 10, 5, 3)

	_, err := f.checkoutCart(t, []domain.CartItem{
		{ProductID: vase, Quantity: 1},
		{ProductID: store.NewID(), Quantity: 1},
	}, domain.ShippingOption{Insured: true})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	var orders []domain.Order
	require.NoError(t, f.store.Find(ctx, store.Orders, store.Query{}, &orders))
	assert.Empty(t, orders)

	product, err := f.products.FindByID(ctx, vase)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestCheckoutValidatesAddressAndPayment(t *testing.T) {
	f := newFixture()
	vase := f.addProduct(t, "vase", 10, 5, 3)
	cartID, err := f.carts.InitCart(context.Background(), &domain.Cart{Items: []domain.CartItem{{ProductID: vase, Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.checkout.Checkout(context.Background(), CheckoutInput{
		CartID:          cartID,
		ShippingAddress: domain.Address{FullName: "x"},
		Payment:         testPayment(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.checkout.Checkout(context.Background(), CheckoutInput{
		CartID:          cartID,
		ShippingAddress: testAddress(),
		Payment:         domain.PaymentMethod{Method: "cash"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.checkout.GetOrder(context.Background(), store.NewID())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
