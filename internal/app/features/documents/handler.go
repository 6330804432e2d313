// internal/app/features/documents/handler.go
package documents

import (
	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	documentstore "github.com/dalemusser/officehub/internal/app/store/documents"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves one document kind. Rules and future-plan documents each
// get their own Handler mounted under their own prefix.
type Handler struct {
	Kind      models.DocumentKind
	Documents *documentstore.Store
	Files     *filestore.Store
	AuditLog  *auditlog.Logger
	ErrLog    *apierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, kind models.DocumentKind, files *filestore.Store, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Kind:      kind,
		Documents: documentstore.New(db, kind),
		Files:     files,
		AuditLog:  audit,
		ErrLog:    errLog,
		Log:       logger.With(zap.String("document_kind", string(kind))),
	}
}

// MountPath is where documents of kind are served, relative to /api.
func MountPath(kind models.DocumentKind) string {
	if kind == models.DocumentKindFuturePlan {
		return "/future-plan-documents"
	}
	return "/rules-documents"
}

// downloadURL is the file_url handed to clients. Files are only reachable
// through ServeDownload so approval gating and the download count apply.
func (h *Handler) downloadURL(id primitive.ObjectID) string {
	return "/api" + MountPath(h.Kind) + "/" + id.Hex() + "/download"
}

// dir is where uploaded files of this kind are stored.
func (h *Handler) dir() string {
	if h.Kind == models.DocumentKindFuturePlan {
		return "future-plans"
	}
	return "rules"
}

func (h *Handler) label() string {
	if h.Kind == models.DocumentKindFuturePlan {
		return "Future plan document"
	}
	return "Rules document"
}
