// internal/app/features/documents/list.go
package documents

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	documentstore "github.com/dalemusser/officehub/internal/app/store/documents"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /?status&q&page&limit, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := normalize.Filter(normalize.Status(query.Get(r, "status")))
	if status != "" && !models.IsValidApprovalStatus(status) {
		respond.Fail(w, http.StatusBadRequest, "Unknown approval status.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := documentstore.ListFilter{
		Status: status,
		Query:  normalize.QueryParam(query.Get(r, "q")),
	}.Filter()

	pg := paging.Parse(r)
	total, err := h.Documents.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count documents", err, "")
		return
	}
	list, err := h.Documents.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list documents", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}

// ServeGet handles GET /{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Documents.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load document", err)
		return
	}
	respond.OK(w, "", d)
}
