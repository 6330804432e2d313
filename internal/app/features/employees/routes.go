// internal/app/features/employees/routes.go
package employees

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	// Self-service; the handler checks admin-or-self.
	r.Put("/{id}/password", h.HandlePassword)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(authz.EmployeeManagers...))
		r.Get("/", h.ServeList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.ServeGet)
		r.Put("/{id}", h.HandleUpdate)
	})

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleAdmin))
		r.Patch("/{id}/status", h.HandleStatus)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
