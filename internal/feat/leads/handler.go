package leads

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
	g "maragu.dev/gomponents"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/middleware"
	"github.com/kozmoai/site/pkg/kz/validation"
)

const (
	honeypotField  = "_honeypot"
	subscribeField = "subscribeToNewsletter"
	// subscribeMarker is sent by the HTML form so an unticked checkbox reads
	// as false rather than as "not sent".
	subscribeMarker = "_subscribe_field"

	maxPayloadBytes = 64 << 10
)

// Handler serves the lead form and the public demo request API.
type Handler struct {
	service  Service
	registry *Registry
	cfg      *config.Config
	log      logger.Logger
	limiter  *rateLimiter
	cors     *cors.Cors
}

// NewHandler creates a new leads handler.
func NewHandler(service Service, registry *Registry, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{
		service:  service,
		registry: registry,
		cfg:      cfg,
		log:      log,
		limiter:  newRateLimiter(cfg.Leads.RateLimit, cfg.Leads.RateBurst),
		cors:     newCORS(cfg.Leads.AllowedOrigins),
	}
}

// Start initializes the leads handler.
func (h *Handler) Start(ctx context.Context) error {
	h.log.Info("Leads handler started")
	return nil
}

// Stop releases the rate limiter.
func (h *Handler) Stop(ctx context.Context) error {
	h.limiter.close()
	return nil
}

// RegisterRoutes registers lead form and API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	h.log.Info("Registering leads routes")

	r.Group(func(r chi.Router) {
		r.Use(middleware.Surface(!h.cfg.IsDev()))
		r.Get("/get-started", h.HandleShowForm)
		r.Post("/get-started", h.HandleSubmitForm)
		r.Post("/get-started/dismiss", h.HandleDismiss)
		r.Post("/get-started/close", h.HandleClose)
		r.Get("/get-started/state", h.HandleState)
	})

	r.Route("/api/v1/demo-requests", func(r chi.Router) {
		r.Use(h.cors.Handler)
		r.With(h.rateLimitMiddleware).Post("/", h.HandleCreate)
		r.With(h.adminOnly).Get("/", h.HandleList)
	})
}

// --- Form surface ---

// HandleShowForm opens the form. A surface that is already open keeps its
// values and any failure message.
func (h *Handler) HandleShowForm(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)

	snap := ctrl.Snapshot()
	if !snap.Open || snap.State == StateSuccess {
		snap = ctrl.Open()
	}
	h.render(w, http.StatusOK, formPage(snap))
}

// HandleSubmitForm submits the form and renders the outcome.
func (h *Handler) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	if r.FormValue(honeypotField) != "" {
		h.log.Debugf("Honeypot filled on lead form from %s", extractIP(r))
		h.render(w, http.StatusOK, successPage(h.cfg.Leads.AutoCloseDelay))
		return
	}

	ctrl := h.controller(r)
	if !ctrl.IsOpen() {
		ctrl.Open()
	}

	snap, err := ctrl.Submit(r.Context(), formInputFromRequest(r))

	var verrs validation.ValidationErrors
	switch {
	case err == nil && snap.State == StateSuccess:
		h.render(w, http.StatusOK, successPage(h.cfg.Leads.AutoCloseDelay))
	case errors.Is(err, ErrAlreadySubmitted):
		h.render(w, http.StatusConflict, successPage(h.cfg.Leads.AutoCloseDelay))
	case errors.Is(err, ErrSubmitInFlight), errors.Is(err, ErrSurfaceClosed):
		h.render(w, http.StatusConflict, formPage(snap))
	case errors.As(err, &verrs):
		h.render(w, http.StatusUnprocessableEntity, formPage(snap))
	case IsPersistenceError(err):
		h.render(w, http.StatusBadGateway, formPage(snap))
	default:
		h.render(w, http.StatusOK, formPage(snap))
	}
}

// HandleDismiss clears a failure message.
func (h *Handler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	if ctrl, ok := h.existingController(r); ok {
		ctrl.Dismiss()
	}
	http.Redirect(w, r, "/get-started", http.StatusSeeOther)
}

// HandleClose closes the surface. The next visit starts with a fresh form.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if ctrl, ok := h.existingController(r); ok {
		ctrl.Close()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleState returns the surface snapshot as JSON. Unknown surfaces read as
// closed with an empty form.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if ctrl, ok := h.existingController(r); ok {
		h.jsonResponse(w, http.StatusOK, ctrl.Snapshot())
		return
	}
	h.jsonResponse(w, http.StatusOK, Snapshot{State: StateIdle, Values: DefaultFormInput()})
}

func (h *Handler) controller(r *http.Request) *Controller {
	id := middleware.GetSurfaceID(r.Context())
	if id == uuid.Nil {
		// Only reachable when the surface middleware is not mounted.
		id = uuid.New()
	}
	return h.registry.Get(id)
}

// existingController never creates a controller.
func (h *Handler) existingController(r *http.Request) (*Controller, bool) {
	id := middleware.GetSurfaceID(r.Context())
	if id == uuid.Nil {
		return nil, false
	}
	return h.registry.Lookup(id)
}

// --- Public API ---

type demoRequestPayload struct {
	FormInput
	Honeypot string `json:"_honeypot"`
}

// HandleCreate stores a demo request sent as JSON or as a form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)

	var p demoRequestPayload
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			h.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
			return
		}
		p.FormInput = formInputFromRequest(r)
		p.Honeypot = r.FormValue(honeypotField)
	}

	if p.Honeypot != "" {
		// Look successful to bots.
		h.jsonResponse(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}

	req, errs := Validate(p.FormInput)
	if errs.HasErrors() {
		recordInvalid()
		h.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs.AsMap()})
		return
	}

	if err := h.service.CreateDemoRequest(context.WithoutCancel(r.Context()), req); err != nil {
		h.jsonResponse(w, http.StatusBadGateway, map[string]string{"error": FailureMessage})
		return
	}

	h.log.Infof("Demo request %s received from %s", req.ID, extractIP(r))
	h.jsonResponse(w, http.StatusCreated, map[string]any{
		"status":    "ok",
		"id":        req.ID,
		"createdAt": req.CreatedAt,
	})
}

// HandleList returns stored demo requests, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reqs, err := h.service.ListDemoRequests(r.Context(), limit)
	if err != nil {
		h.log.Errorf("Cannot list demo requests: %v", err)
		h.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": "cannot list demo requests"})
		return
	}
	if reqs == nil {
		reqs = []*DemoRequest{}
	}
	h.jsonResponse(w, http.StatusOK, map[string]any{"demoRequests": reqs})
}

// --- Helpers ---

func formInputFromRequest(r *http.Request) FormInput {
	in := FormInput{
		Name:    r.FormValue(FieldName),
		Email:   r.FormValue(FieldEmail),
		Company: r.FormValue(FieldCompany),
		Message: r.FormValue(FieldMessage),
	}
	if r.Form.Has(subscribeField) || r.Form.Has(subscribeMarker) {
		subscribe := parseCheckbox(r.FormValue(subscribeField))
		in.Subscribe = &subscribe
	}
	return in
}

func parseCheckbox(v string) bool {
	if strings.EqualFold(v, "on") || strings.EqualFold(v, "yes") {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func (h *Handler) render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		h.log.Errorf("Cannot render lead page: %v", err)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorf("Cannot encode JSON response: %v", err)
	}
}
