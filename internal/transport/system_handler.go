package transport

import (
	"context"
	"net/http"
	"time"

	"delicassy/internal/middleware"
	"delicassy/internal/schema"
	"delicassy/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxListedCollections = 10
	diagnosticTimeout    = 3 * time.Second
)

// Diagnostics is the body of GET /test
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// SystemHandler serves the root, diagnostic and schema endpoints
type SystemHandler struct {
	store    store.Store
	urlSet   bool
	registry *schema.Registry
	logger   *zap.Logger
}

// NewSystemHandler creates a new SystemHandler. urlSet reports whether
// a database URL was configured.
func NewSystemHandler(s store.Store, urlSet bool, registry *schema.Registry, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		store:    s,
		urlSet:   urlSet,
		registry: registry,
		logger:   logger,
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/test", h.Diagnose)
	r.Get("/health", h.Health)
	r.Get("/schema", h.Schema)
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"name": "Delicassy", "status": "ok"})
}

// Diagnose reports store connectivity. It always answers 200.
func (h *SystemHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), diagnosticTimeout)
	defer cancel()

	middleware.RespondWithJSON(w, http.StatusOK, h.diagnose(ctx))
}

func (h *SystemHandler) diagnose(ctx context.Context) Diagnostics {
	d := Diagnostics{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      "❌ Not Set",
		DatabaseName:     "❌ Not Set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if !store.IsConnected(h.store) {
		return d
	}

	d.Database = "✅ Available"
	if h.urlSet {
		d.DatabaseURL = "✅ Set"
	}
	d.DatabaseName = h.store.Name()
	d.ConnectionStatus = "Connected"

	collections, err := h.store.Collections(ctx)
	if err != nil {
		h.logger.Warn("Diagnostic collection listing failed", zap.Error(err))
		d.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 80)
		return d
	}

	if len(collections) > maxListedCollections {
		collections = collections[:maxListedCollections]
	}
	d.Collections = collections
	d.Database = "✅ Connected & Working"
	return d
}

// Health reports whether the store answers a ping
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), diagnosticTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		middleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unavailable",
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": h.store.Driver(),
	})
}

// Schema lists every declared record shape keyed by entity name
func (h *SystemHandler) Schema(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.registry.All())
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
