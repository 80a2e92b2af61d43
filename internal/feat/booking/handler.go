package booking

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/kozmoai/site/pkg/kz/logger"
)

// Handler serves the book-a-demo page.
type Handler struct {
	widget *Widget
	log    logger.Logger
}

func NewHandler(widget *Widget, log logger.Logger) *Handler {
	return &Handler{
		widget: widget,
		log:    log,
	}
}

func (h *Handler) Start(ctx context.Context) error {
	if !h.widget.IsConfigured() {
		h.log.Info("Booking widget not configured, /book-demo disabled")
		return nil
	}
	h.log.Infof("Booking widget embedding %s/%s", h.widget.Username, h.widget.EventName)
	return nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering booking routes")
	r.Get("/book-demo", h.HandleBookDemo)
}

// HandleBookDemo renders the scheduling embed, or a 404 page when the
// widget is not configured.
func (h *Handler) HandleBookDemo(w http.ResponseWriter, r *http.Request) {
	if !h.widget.IsConfigured() {
		h.render(w, http.StatusNotFound, unavailablePage())
		return
	}
	h.render(w, http.StatusOK, bookDemoPage(h.widget.EmbedURL()))
}

func (h *Handler) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		h.log.Errorf("Cannot render booking page: %v", err)
	}
}
