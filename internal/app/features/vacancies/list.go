// internal/app/features/vacancies/list.go
package vacancies

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /api/vacancies?status&q&page&limit, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := vacancystore.ListFilter{
		Status: normalize.Filter(normalize.Status(query.Get(r, "status"))),
		Query:  normalize.QueryParam(query.Get(r, "q")),
	}.Filter()

	pg := paging.Parse(r)
	total, err := h.Vacancies.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count vacancies", err, "")
		return
	}
	list, err := h.Vacancies.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list vacancies", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}

// ServeGet handles GET /api/vacancies/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Vacancies.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load vacancy", err)
		return
	}
	respond.OK(w, "", v)
}
