package transport

import (
	"net/http"

	"delicassy/internal/domain"
	"delicassy/internal/middleware"
	"delicassy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler handles packaging guides, the about page and notifications
type ContentHandler struct {
	contentService service.ContentService
	logger         *zap.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService service.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// RegisterRoutes registers the content routes. guard wraps the write
// endpoints.
func (h *ContentHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/api/packaging", func(r chi.Router) {
		r.Get("/", h.ListPackagingGuides)
		r.With(guard).Post("/", h.CreatePackagingGuide)
	})

	r.Get("/api/about", h.GetAbout)

	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.With(guard).Post("/", h.CreateNotification)
		r.Get("/{user_id}", h.ListNotifications)
		r.Get("/{user_id}/stream", h.StreamNotifications)
	})
}

func (h *ContentHandler) ListPackagingGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.contentService.ListPackagingGuides(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "List packaging guides", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, guides)
}

func (h *ContentHandler) CreatePackagingGuide(w http.ResponseWriter, r *http.Request) {
	var guide domain.PackagingGuide
	if !decode(w, r, h.logger, &guide) {
		return
	}

	id, err := h.contentService.CreatePackagingGuide(r.Context(), &guide)
	if err != nil {
		respondWithServiceError(w, h.logger, "Create packaging guide", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}

func (h *ContentHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := h.contentService.GetAbout(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, "Get about", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, about)
}

// ListNotifications reads the user from the path or ?user_id=
func (h *ContentHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}
	if userID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	notes, err := h.contentService.ListNotifications(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, "List notifications", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *ContentHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var note domain.Notification
	if !decode(w, r, h.logger, &note) {
		return
	}

	id, err := h.contentService.CreateNotification(r.Context(), &note)
	if err != nil {
		respondWithServiceError(w, h.logger, "Create notification", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, IDResponse{ID: id})
}
