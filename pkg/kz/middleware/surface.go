package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kozmoai/site/pkg/kz/model"
)

type contextKey string

const (
	// SurfaceCookieName is the cookie that identifies a browser's dialog surface.
	SurfaceCookieName = "kz_surface"

	// SurfaceIDKey is the context key for the surface ID.
	SurfaceIDKey = contextKey("surface_id")

	surfaceMaxAge = 24 * 60 * 60
)

// Surface makes sure every request carries a surface ID, issuing a new cookie
// when the browser has none or one that is not a canonical ID.
func Surface(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.Nil
			if cookie, err := r.Cookie(SurfaceCookieName); err == nil {
				if parsed, err := model.ParseID(cookie.Value); err == nil {
					id = parsed
				}
			}
			if id == uuid.Nil {
				id = model.NewID()
				SetSurfaceCookie(w, id.String(), secure)
			}

			ctx := context.WithValue(r.Context(), SurfaceIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSurfaceCookie sets the surface cookie.
func SetSurfaceCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SurfaceCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   surfaceMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSurfaceID extracts the surface ID from the context.
// Returns uuid.Nil if none is present.
func GetSurfaceID(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if id, ok := ctx.Value(SurfaceIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
