// internal/app/features/employees/list.go
package employees

import (
	"context"
	"net/http"

	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/paging"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /api/employees?role&status&q&page&limit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := employeestore.ListFilter{
		Role:   normalize.Filter(normalize.Role(query.Get(r, "role"))),
		Status: normalize.Filter(normalize.Status(query.Get(r, "status"))),
		Query:  normalize.QueryParam(query.Get(r, "q")),
	}.Filter()

	pg := paging.Parse(r)
	total, err := h.Employees.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count employees", err, "")
		return
	}
	list, err := h.Employees.Find(ctx, filter, pg.FindOptions(bson.D{{Key: "personal.full_name_ci", Value: 1}}))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list employees", err, "")
		return
	}
	respond.List(w, list, pg.MetaFor(total))
}
