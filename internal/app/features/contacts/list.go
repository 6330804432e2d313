// internal/app/features/contacts/list.go
package contacts

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /api/contacts?stage&q&rm_id&page&limit, sorted by
// name. rm_id limits the list to one RM's prospects; an RM always gets
// their own.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	stage := normalize.Filter(normalize.Stage(query.Get(r, "stage")))
	if stage != "" && !models.IsValidFunnelStage(stage) {
		respond.Fail(w, http.StatusBadRequest, "Unknown stage.")
		return
	}

	var rmID *primitive.ObjectID
	if authz.IsRM(r) {
		_, _, uid, _ := authz.UserCtx(r)
		rmID = &uid
	} else if raw := query.Get(r, "rm_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "Invalid rm_id.")
			return
		}
		rmID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	lf := contactstore.ListFilter{
		Stage: stage,
		Query: normalize.QueryParam(query.Get(r, "q")),
	}
	if rmID != nil {
		ids, err := h.Assignments.ProspectIDsByRM(ctx, *rmID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load rm prospects", err, "")
			return
		}
		lf.IDs = ids
	}
	filter := lf.Filter()

	pg := paging.Parse(r)
	total, err := h.Contacts.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count contacts", err, "")
		return
	}
	list, err := h.Contacts.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list contacts", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}

// ServeGet handles GET /api/contacts/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.checkVisible(ctx, w, r, id) {
		return
	}
	c, err := h.Contacts.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load contact", err)
		return
	}
	respond.OK(w, "", c)
}

// checkVisible writes a 404 when the current user may not see id.
// Hidden and missing contacts look the same.
func (h *Handler) checkVisible(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	ok, err := h.visible(ctx, r, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check contact visibility", err, "")
		return false
	}
	if !ok {
		respond.Fail(w, http.StatusNotFound, "Contact not found.")
		return false
	}
	return true
}
