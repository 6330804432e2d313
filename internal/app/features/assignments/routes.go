// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(append([]string{models.RoleRM}, authz.Assigners...)...))

	r.Get("/", h.ServeList)
	r.Get("/prospects/{prospectID}", h.ServeProspect)
	r.Get("/rms/{rmID}", h.ServeRM)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(authz.Assigners...))
		r.Get("/load", h.ServeLoad)
		r.Put("/prospects/{prospectID}", h.HandleAssign)
		r.Delete("/prospects/{prospectID}", h.HandleUnassign)
	})
	return r
}
