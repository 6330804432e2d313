// internal/app/features/vacancies/handler.go
package vacancies

import (
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DocumentDir is the filestore directory vacancy documents are written under.
const DocumentDir = "vacancies"

// Handler serves the vacancy API.
type Handler struct {
	DB         *mongo.Database
	Vacancies  *vacancystore.Store
	Candidates *candidatestore.Store
	Files      *filestore.Store
	AuditLog   *auditlog.Logger
	ErrLog     *apierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, files *filestore.Store, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Vacancies:  vacancystore.New(db),
		Candidates: candidatestore.New(db),
		Files:      files,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
	}
}
