// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level
// router chooses (e.g., "/api/dashboard"). Any signed-in employee may read
// the summary.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/summary", h.ServeSummary)
	})
	return r
}
