package service

import (
	"context"
	"fmt"

	"delicassy/internal/domain"
	"delicassy/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutInput carries everything needed to turn a cart into an order
type CheckoutInput struct {
	CartID          string
	ShippingAddress domain.Address
	Payment         domain.PaymentMethod
	Shipping        domain.ShippingOption
}

// CheckoutResult is returned to the client after an order is placed
type CheckoutResult struct {
	OrderID     string             `json:"order_id"`
	AmountTotal float64            `json:"amount_total"`
	Status      domain.OrderStatus `json:"status"`
}

// CheckoutService defines the interface for order placement
type CheckoutService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Checkout prices the cart, stores the order and then decrements stock
// line by line. Stock updates are not atomic with the order write.
func (s *checkoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if err := domain.Validate(&in.ShippingAddress); err != nil {
		return nil, invalid(err)
	}
	if err := domain.Validate(&in.Payment); err != nil {
		return nil, invalid(err)
	}

	cart, err := s.cartRepo.FindByID(ctx, in.CartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines, err := s.priceCart(ctx, cart.Items)
	if err != nil {
		return nil, err
	}
	quote := PriceLines(lines, in.Shipping)

	order := &domain.Order{
		UserID:            cart.UserID,
		CartID:            cart.ID,
		Items:             cart.Items,
		AmountSubtotal:    quote.Subtotal.InexactFloat64(),
		AmountShipping:    quote.Shipping.InexactFloat64(),
		AmountInsurance:   quote.Insurance.InexactFloat64(),
		AmountTotal:       quote.Total.InexactFloat64(),
		ShippingAddress:   in.ShippingAddress,
		Payment:           in.Payment,
		Shipping:          in.Shipping,
		Status:            domain.OrderStatusCreated,
		EstimatedDelivery: EstimateDelivery(quote.AvgFragility),
	}

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", orderID),
		zap.String("cart_id", cart.ID),
		zap.String("amount_total", quote.Total.StringFixed(2)),
	)

	for _, item := range cart.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.logger.Error("Stock update failed after order creation",
				zap.String("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("order %s created but stock update failed: %w", orderID, err)
		}
	}

	return &CheckoutResult{
		OrderID:     orderID,
		AmountTotal: order.AmountTotal,
		Status:      order.Status,
	}, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// priceCart resolves every distinct product with a single lookup
func (s *checkoutService) priceCart(ctx context.Context, items []domain.CartItem) ([]PricedLine, error) {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]PricedLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.ProductID)
		}
		lines = append(lines, PricedLine{
			Price:     decimal.NewFromFloat(product.Price),
			Quantity:  item.Quantity,
			Fragility: product.FragilityRating,
		})
	}
	return lines, nil
}
