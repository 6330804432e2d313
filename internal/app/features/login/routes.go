// internal/app/features/login/routes.go
package login

import (
	"net/http"

	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth API. ipLimit, when non-nil, guards the login
// endpoint with a per-IP rate limit.
func Routes(h *Handler, sm *auth.SessionManager, ipLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		if ipLimit != nil {
			r.Use(ipLimit)
		}
		r.Post("/login", h.HandleLogin)
	})
	r.Post("/logout", h.HandleLogout)
	r.With(sm.RequireSignedIn).Get("/me", h.ServeMe)
	return r
}
