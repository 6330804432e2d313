// internal/app/features/candidates/handler.go
package candidates

import (
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ResumeDir is the filestore directory resumes are written under.
const ResumeDir = "resumes"

// Handler serves the recruitment pipeline API.
type Handler struct {
	Candidates *candidatestore.Store
	Vacancies  *vacancystore.Store
	Files      *filestore.Store
	AuditLog   *auditlog.Logger
	ErrLog     *apierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, files *filestore.Store, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Candidates: candidatestore.New(db),
		Vacancies:  vacancystore.New(db),
		Files:      files,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
	}
}
