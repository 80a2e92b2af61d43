package blog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/kozmoai/site/pkg/kz/logger"
)

// Handler serves the blog listing and its search endpoints.
type Handler struct {
	service Service
	log     logger.Logger
}

// NewHandler creates a new blog handler.
func NewHandler(service Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Start initializes the blog handler.
func (h *Handler) Start(ctx context.Context) error {
	h.log.Info("Blog handler started")
	return nil
}

// RegisterRoutes registers blog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering blog routes")

	r.Get("/blog", h.HandleList)
	r.Get("/blog/results", h.HandleResults)
	r.Get("/api/v1/blog/search", h.HandleSearch)
}

// HandleList renders the full listing for ?q=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess := h.service.NewSession()
	res := sess.SetQuery(r.URL.Query().Get("q"))
	h.render(w, http.StatusOK, blogPage(res))
}

// HandleResults renders only the results block; the search box script swaps
// it in on every keystroke.
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	res := h.service.Search(r.URL.Query().Get("q"))
	h.render(w, http.StatusOK, blogResults(res))
}

// HandleSearch returns the search result as JSON.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	res := h.service.Search(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Errorf("Cannot encode blog search result: %v", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		h.log.Errorf("Cannot render blog page: %v", err)
	}
}
