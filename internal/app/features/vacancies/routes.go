// internal/app/features/vacancies/routes.go
package vacancies

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(authz.VacancyManagers...))
		r.Post("/", h.HandleCreate)
		r.Patch("/{id}/status", h.HandleStatus)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
