// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /api/assignments?rm_id&page&limit, most recent
// first. RMs only ever see their own.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if authz.IsRM(r) {
		_, _, uid, _ := authz.UserCtx(r)
		filter["rm_id"] = uid
	} else if raw := query.Get(r, "rm_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "Invalid rm_id.")
			return
		}
		filter["rm_id"] = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pg := paging.Parse(r)
	total, err := h.Assignments.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count assignments", err, "")
		return
	}
	list, err := h.Assignments.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "assigned_at", Value: -1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list assignments", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}

// ServeProspect handles GET /api/assignments/prospects/{prospectID}.
func (h *Handler) ServeProspect(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "prospectID")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Assignments.GetByProspect(ctx, id)
	if err == nil && authz.IsRM(r) && !authz.IsSelf(r, a.RMID) {
		err = assignmentstore.ErrNotFound
	}
	if err != nil {
		h.writeStoreError(w, r, "load assignment", err)
		return
	}
	respond.OK(w, "", a)
}

// rmProspects is the response of ServeRM.
type rmProspects struct {
	RMID      string           `json:"rm_id"`
	Count     int              `json:"count"`
	Prospects []models.Contact `json:"prospects"`
}

// ServeRM handles GET /api/assignments/rms/{rmID}: the contacts assigned to
// one RM, by name. An RM may only ask about themselves.
func (h *Handler) ServeRM(w http.ResponseWriter, r *http.Request) {
	rmID, ok := shared.IDParam(w, r, "rmID")
	if !ok {
		return
	}
	if authz.IsRM(r) && !authz.IsSelf(r, rmID) {
		h.ErrLog.LogForbidden(w, r, "rm asked for another rm's prospects", "You can only view your own prospects.")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ids, err := h.Assignments.ProspectIDsByRM(ctx, rmID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load rm prospects", err, "")
		return
	}
	list, err := h.Contacts.GetByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load prospects", err, "")
		return
	}
	if list == nil {
		list = []models.Contact{}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullNameCI < list[j].FullNameCI })
	respond.OK(w, "", rmProspects{RMID: rmID.Hex(), Count: len(list), Prospects: list})
}

// ServeLoad handles GET /api/assignments/load: prospect counts per RM.
func (h *Handler) ServeLoad(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	load, err := h.Assignments.Load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "rm load", err, "")
		return
	}
	respond.OK(w, "", load)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, assignmentstore.ErrNotFound) {
		respond.Fail(w, http.StatusNotFound, "Prospect is not assigned.")
		return
	}
	h.ErrLog.LogServerError(w, r, op, err, "")
}
