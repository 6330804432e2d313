// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/officehub/internal/app/store/metrics"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeSummary handles GET /api/dashboard/summary.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	s, err := metricsstore.FetchSummary(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard summary", err, "")
		return
	}

	_, uname, _, _ := authz.UserCtx(r)
	h.Log.Debug("dashboard summary served", zap.String("user", uname))
	respond.OK(w, "", s)
}
