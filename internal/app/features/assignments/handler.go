// internal/app/features/assignments/handler.go
package assignments

import (
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	contactstore "github.com/dalemusser/officehub/internal/app/store/contacts"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves prospect-to-RM assignments.
type Handler struct {
	DB          *mongo.Database
	Assignments *assignmentstore.Store
	Contacts    *contactstore.Store
	Employees   *employeestore.Store
	AuditLog    *auditlog.Logger
	ErrLog      *apierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Assignments: assignmentstore.New(db),
		Contacts:    contactstore.New(db),
		Employees:   employeestore.New(db),
		AuditLog:    audit,
		ErrLog:      errLog,
		Log:         logger,
	}
}
