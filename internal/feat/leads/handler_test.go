package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozmoai/site/pkg/kz/config"
	"github.com/kozmoai/site/pkg/kz/logger"
	"github.com/kozmoai/site/pkg/kz/middleware"
)

type testEnv struct {
	router  chi.Router
	store   *stubStore
	handler *Handler
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T, store *stubStore, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Env: "dev",
		Leads: config.LeadsConfig{
			SubmitTimeout:  time.Second,
			AutoCloseDelay: 2 * time.Second,
			SurfaceTTL:     time.Minute,
			RateLimit:      100,
			RateBurst:      100,
			AdminToken:     "s3cret",
		},
	}
	for _, m := range mutate {
		m(cfg)
	}

	svc := newStubService(store, cfg.Leads.SubmitTimeout)
	registry := NewRegistry(svc, cfg, logger.NewNoopLogger())
	h := NewHandler(svc, registry, cfg, logger.NewNoopLogger())
	t.Cleanup(func() { _ = h.Stop(t.Context()) })

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return &testEnv{router: r, store: store, handler: h}
}

// do sends req with the surface cookie, remembering any new one.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SurfaceCookieName {
			e.cookies = []*http.Cookie{c}
		}
	}
	return w
}

func (e *testEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) postJSON(target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) state(t *testing.T) Snapshot {
	t.Helper()
	w := e.do(httptest.NewRequest(http.MethodGet, "/get-started/state", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var raw struct {
		State       string            `json:"state"`
		Open        bool              `json:"open"`
		Error       string            `json:"error"`
		FieldErrors map[string]string `json:"fieldErrors"`
		Values      FormInput         `json:"values"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

	snap := Snapshot{Open: raw.Open, Error: raw.Error, FieldErrors: raw.FieldErrors, Values: raw.Values}
	for _, s := range []State{StateIdle, StateSubmitting, StateSuccess, StateFailed} {
		if s.String() == raw.State {
			snap.State = s
		}
	}
	return snap
}

func validForm() url.Values {
	return url.Values{
		"name":          {"Al"},
		"email":         {"al@x.com"},
		"company":       {"Acme"},
		"message":       {"Hello"},
		subscribeMarker: {"1"},
		subscribeField:  {"on"},
	}
}

func TestShowFormIssuesSurfaceCookie(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.cookies, 1)

	body := w.Body.String()
	assert.Contains(t, body, "Get Started with KozmoAI")
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, "Subscribe to newsletter")
	assert.True(t, env.state(t).Open)
}

func TestSubmitFormSuccess(t *testing.T) {
	env := newTestEnv(t, &stubStore{})
	env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))

	w := env.postForm("/get-started", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank You!")
	assert.Contains(t, w.Body.String(), `content="2;url=/"`)

	require.Equal(t, 1, env.store.count())
	stored := env.store.last()
	assert.Equal(t, "Acme", stored.Company)
	assert.True(t, stored.SubscribeToNewsletter)
	assert.Equal(t, StateSuccess, env.state(t).State)
}

func TestSubmitFormRepostDuringSuccess(t *testing.T) {
	env := newTestEnv(t, &stubStore{})
	env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))

	w := env.postForm("/get-started", validForm())
	require.Equal(t, http.StatusOK, w.Code)

	w = env.postForm("/get-started", validForm())
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Thank You!")
	assert.Equal(t, 1, env.store.count())
	assert.Equal(t, StateSuccess, env.state(t).State)
}

func TestSubmitFormUncheckedNewsletter(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	form := validForm()
	form.Del(subscribeField)
	w := env.postForm("/get-started", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.store.last().SubscribeToNewsletter)
}

func TestSubmitFormValidationErrors(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	form := validForm()
	form.Set("name", "A")
	form.Set("email", "not-an-email")
	w := env.postForm("/get-started", form)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters.")
	assert.Contains(t, body, "Please enter a valid email address.")
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Equal(t, 0, env.store.count())
	assert.Equal(t, StateIdle, env.state(t).State)
}

func TestSubmitFormFailureThenDismiss(t *testing.T) {
	env := newTestEnv(t, &stubStore{err: errors.New("down")})
	env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))

	w := env.postForm("/get-started", validForm())
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), FailureMessage)
	assert.Contains(t, w.Body.String(), `value="Acme"`)

	w = env.postForm("/get-started/dismiss", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/get-started", w.Header().Get("Location"))

	snap := env.state(t)
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "Acme", snap.Values.Company)

	// Revisiting keeps the entered values.
	w = env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))
	assert.Contains(t, w.Body.String(), `value="Acme"`)
}

func TestCloseThenReopenStartsFresh(t *testing.T) {
	env := newTestEnv(t, &stubStore{err: errors.New("down")})
	env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))
	env.postForm("/get-started", validForm())

	w := env.postForm("/get-started/close", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, env.state(t).Open)

	w = env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), FailureMessage)
	assert.NotContains(t, w.Body.String(), `value="Acme"`)
	assert.Equal(t, StateIdle, env.state(t).State)
}

func TestSubmitFormHoneypot(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	form := validForm()
	form.Set(honeypotField, "http://spam.example")
	w := env.postForm("/get-started", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.store.count())
}

func TestAPICreateJSON(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postJSON("/api/v1/demo-requests", `{"name":"Al","email":"al@x.com","subscribeToNewsletter":false}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["id"])

	require.Equal(t, 1, env.store.count())
	assert.False(t, env.store.last().SubscribeToNewsletter)
	assert.Equal(t, fixedNow, env.store.last().CreatedAt)
}

func TestAPICreateDefaultsNewsletter(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postJSON("/api/v1/demo-requests", `{"name":"Al","email":"al@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.store.last().SubscribeToNewsletter)
}

func TestAPICreateForm(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postForm("/api/v1/demo-requests", url.Values{"name": {"Al"}, "email": {"al@x.com"}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.store.last().SubscribeToNewsletter)
}

func TestAPICreateValidation(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postJSON("/api/v1/demo-requests", `{"name":"A","email":"al@x.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"name": "Name must be at least 2 characters."}, resp.Errors)
	assert.Equal(t, 0, env.store.count())
}

func TestAPICreateBadJSON(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postJSON("/api/v1/demo-requests", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPICreateStoreFailure(t *testing.T) {
	env := newTestEnv(t, &stubStore{err: errors.New("down")})

	w := env.postJSON("/api/v1/demo-requests", `{"name":"Al","email":"al@x.com"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), FailureMessage)
}

func TestAPICreateHoneypot(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	w := env.postJSON("/api/v1/demo-requests", `{"name":"Al","email":"al@x.com","_honeypot":"x"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, env.store.count())
}

func TestAPICreateRateLimited(t *testing.T) {
	env := newTestEnv(t, &stubStore{}, func(cfg *config.Config) {
		cfg.Leads.RateLimit = 0.001
		cfg.Leads.RateBurst = 2
	})

	body := `{"name":"Al","email":"al@x.com"}`
	assert.Equal(t, http.StatusCreated, env.postJSON("/api/v1/demo-requests", body).Code)
	assert.Equal(t, http.StatusCreated, env.postJSON("/api/v1/demo-requests", body).Code)

	w := env.postJSON("/api/v1/demo-requests", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 2, env.store.count())

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, http.StatusCreated, env.do(req).Code)
}

func TestAPICORSPreflight(t *testing.T) {
	env := newTestEnv(t, &stubStore{}, func(cfg *config.Config) {
		cfg.Leads.AllowedOrigins = []string{"https://kozmoai.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/demo-requests", nil)
	req.Header.Set("Origin", "https://kozmoai.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := env.do(req)

	assert.Equal(t, "https://kozmoai.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/demo-requests", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = env.do(req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIListRequiresToken(t *testing.T) {
	env := newTestEnv(t, &stubStore{})
	env.postJSON("/api/v1/demo-requests", `{"name":"Al","email":"al@x.com"}`)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/demo-requests", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/demo-requests", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, env.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/demo-requests?limit=10", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DemoRequests []DemoRequest `json:"demoRequests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.DemoRequests, 1)
	assert.Equal(t, "al@x.com", resp.DemoRequests[0].Email)
}

func TestAPIListDisabledWithoutToken(t *testing.T) {
	env := newTestEnv(t, &stubStore{}, func(cfg *config.Config) {
		cfg.Leads.AdminToken = ""
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/demo-requests", nil)
	req.Header.Set("Authorization", "Bearer ")
	assert.Equal(t, http.StatusNotFound, env.do(req).Code)
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", extractIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", extractIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", extractIP(req))
}

func TestParseCheckbox(t *testing.T) {
	for _, v := range []string{"on", "ON", "true", "1", "yes"} {
		assert.True(t, parseCheckbox(v), v)
	}
	for _, v := range []string{"", "off", "false", "0", "nope"} {
		assert.False(t, parseCheckbox(v), v)
	}
}

func TestReadOnlyRoutesDoNotCreateSurfaces(t *testing.T) {
	env := newTestEnv(t, &stubStore{})

	for range 3 {
		env.cookies = nil
		w := env.do(httptest.NewRequest(http.MethodGet, "/get-started/state", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"open":false`)

		env.cookies = nil
		w = env.postForm("/get-started/dismiss", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)

		env.cookies = nil
		w = env.postForm("/get-started/close", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	}
	assert.Equal(t, 0, env.handler.registry.Len())

	env.do(httptest.NewRequest(http.MethodGet, "/get-started", nil))
	assert.Equal(t, 1, env.handler.registry.Len())
}
