package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/kozmoai/site/pkg/kz/logger"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the landing page, use case pages and the health check.
type Handler struct {
	service Service
	db      Pinger
	log     logger.Logger
}

func NewHandler(service Service, db Pinger, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		db:      db,
		log:     log,
	}
}

func (h *Handler) Start(ctx context.Context) error {
	h.log.Info("Pages handler started")
	return nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering pages routes")

	r.Get("/", h.HandleHome)
	r.Get("/use-cases/{slug}", h.HandleUseCase)
	r.Get("/health", h.HandleHealth)
	r.NotFound(h.HandleNotFound)
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, homePage(h.service.Landing(), h.service.UseCases()))
}

func (h *Handler) HandleUseCase(w http.ResponseWriter, r *http.Request) {
	uc, ok := h.service.UseCase(chi.URLParam(r, "slug"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, useCasePage(uc, h.service.UseCases()))
}

func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, notFoundPage())
}

// HandleHealth pings the database.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorf("Health check failed: %v", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (h *Handler) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		h.log.Errorf("Cannot render page: %v", err)
	}
}
