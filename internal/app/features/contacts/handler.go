// internal/app/features/contacts/handler.go
package contacts

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the contact funnel API.
type Handler struct {
	DB          *mongo.Database
	Contacts    *contactstore.Store
	Assignments *assignmentstore.Store
	AuditLog    *auditlog.Logger
	ErrLog      *apierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Contacts:    contactstore.New(db),
		Assignments: assignmentstore.New(db),
		AuditLog:    audit,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// visible reports whether the current user may see contact id. RMs see
// only the contacts assigned to them; every other role sees all.
func (h *Handler) visible(ctx context.Context, r *http.Request, id primitive.ObjectID) (bool, error) {
	if !authz.IsRM(r) {
		return true, nil
	}
	_, _, uid, _ := authz.UserCtx(r)
	a, err := h.Assignments.GetByProspect(ctx, id)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.RMID == uid, nil
}
