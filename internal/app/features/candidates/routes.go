// internal/app/features/candidates/routes.go
package candidates

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(authz.Recruiters...))

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/rubric", h.ServeRubric)
	r.Post("/score", h.HandleScore)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Patch("/{id}/stage", h.HandleStage)
	r.Post("/{id}/resume", h.HandleResume)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
