// internal/app/features/documents/routes.go
package documents

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/download", h.ServeDownload)

	r.With(sm.RequireRole(authz.DocumentUploaders...)).Post("/", h.HandleUpload)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleAdmin))
		r.Patch("/{id}/approval", h.HandleApproval)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
