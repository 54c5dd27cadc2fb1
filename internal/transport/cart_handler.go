package transport

import (
	"net/http"

	"delicassy/internal/domain"
	"delicassy/internal/middleware"
	"delicassy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateCartRequest replaces every item of a cart
type UpdateCartRequest struct {
	Items []domain.CartItem `json:"items" validate:"required,dive"`
}

// CartHandler handles HTTP requests for carts
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Post("/init", h.InitCart)
		r.Get("/{id}", h.GetCart)
		r.Put("/{id}", h.UpdateCart)
	})
}

func (h *CartHandler) InitCart(w http.ResponseWriter, r *http.Request) {
	var cart domain.Cart
	if !decode(w, r, h.logger, &cart) {
		return
	}

	id, err := h.cartService.InitCart(r.Context(), &cart)
	if err != nil {
		respondWithServiceError(w, h.logger, "Init cart", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.GetCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, "Get cart", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	if err := h.cartService.UpdateCart(r.Context(), chi.URLParam(r, "id"), req.Items); err != nil {
		respondWithServiceError(w, h.logger, "Update cart", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
