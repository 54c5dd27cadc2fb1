package transport

import (
	"net/http"

	"delicassy/internal/domain"
	"delicassy/internal/middleware"
	"delicassy/internal/repository"
	"delicassy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for categories, products and reviews
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog routes. guard wraps the write
// endpoints.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.With(guard).Post("/", h.CreateCategory)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.With(guard).Post("/", h.CreateProduct)
		r.Get("/{slug}", h.GetProduct)
	})

	r.Post("/api/reviews", h.AddReview)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "List categories", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if !decode(w, r, h.logger, &category) {
		return
	}

	id, err := h.catalogService.CreateCategory(r.Context(), &category)
	if err != nil {
		respondWithServiceError(w, h.logger, "Create category", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}

// ListProducts supports ?category=<slug> and ?q=<text>
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, h.logger, "List products", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decode(w, r, h.logger, &product) {
		return
	}

	id, err := h.catalogService.CreateProduct(r.Context(), &product)
	if err != nil {
		respondWithServiceError(w, h.logger, "Create product", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogService.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondWithServiceError(w, h.logger, "Get product", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if !decode(w, r, h.logger, &review) {
		return
	}

	id, err := h.catalogService.AddReview(r.Context(), &review)
	if err != nil {
		respondWithServiceError(w, h.logger, "Add review", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}
