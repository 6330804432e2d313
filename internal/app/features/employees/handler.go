// internal/app/features/employees/handler.go
package employees

import (
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the employee onboarding API.
type Handler struct {
	Employees *employeestore.Store
	AuditLog  *auditlog.Logger
	ErrLog    *apierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Employees: employeestore.New(db),
		AuditLog:  audit,
		ErrLog:    errLog,
		Log:       logger,
	}
}
