// internal/app/features/candidates/list.go
package candidates

import (
	"context"
	"net/http"
	"strconv"

	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /api/candidates?stage&vacancy_id&q&min_marks&sort&page&limit.
// sort=marks orders by total marks (highest first); the default is newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	lf := candidatestore.ListFilter{
		Stage: normalize.Filter(normalize.Stage(query.Get(r, "stage"))),
		Query: normalize.QueryParam(query.Get(r, "q")),
	}
	if lf.Stage != "" && !models.IsValidCandidateStage(lf.Stage) {
		respond.Fail(w, http.StatusBadRequest, "Unknown stage filter.")
		return
	}
	if v := query.Get(r, "vacancy_id"); v != "" {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "Invalid vacancy_id.")
			return
		}
		lf.VacancyID = &oid
	}
	if v := query.Get(r, "min_marks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respond.Fail(w, http.StatusBadRequest, "min_marks must be a non-negative number.")
			return
		}
		lf.MinMarks = &n
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if query.Get(r, "sort") == "marks" {
		sort = bson.D{{Key: "total_marks", Value: -1}, {Key: "created_at", Value: -1}}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := lf.Filter()
	pg := paging.Parse(r)
	total, err := h.Candidates.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count candidates", err, "")
		return
	}
	list, err := h.Candidates.Find(ctx, filter, pg.FindOptions(sort))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list candidates", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}
