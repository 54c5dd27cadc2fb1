package transport

import (
	"net/http"

	"delicassy/internal/domain"
	"delicassy/internal/middleware"
	"delicassy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout payload. Insured defaults to
// true and premium packaging to false.
type CheckoutRequest struct {
	CartID           string               `json:"cart_id" validate:"required"`
	ShippingAddress  domain.Address       `json:"shipping_address"`
	Payment          domain.PaymentMethod `json:"payment"`
	Insured          *bool                `json:"insured"`
	PremiumPackaging bool                 `json:"premium_packaging"`
}

func (req CheckoutRequest) input() service.CheckoutInput {
	insured := true
	if req.Insured != nil {
		insured = *req.Insured
	}

	return service.CheckoutInput{
		CartID:          req.CartID,
		ShippingAddress: req.ShippingAddress,
		Payment:         req.Payment,
		Shipping: domain.ShippingOption{
			Insured:          insured,
			PremiumPackaging: req.PremiumPackaging,
		},
	}
}

// CheckoutHandler handles order placement and lookup
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout and order routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
	r.Get("/api/orders/{id}", h.GetOrder)
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	result, err := h.checkoutService.Checkout(r.Context(), req.input())
	if err != nil {
		respondWithServiceError(w, h.logger, "Checkout", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkoutService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, "Get order", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}
