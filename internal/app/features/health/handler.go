package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler reports whether the database and the upload store are usable.
type Handler struct {
	Client  *mongo.Client
	Files   *filestore.Store
	Log     *zap.Logger
	started time.Time
}

// NewHandler constructs a health Handler. files may be nil, in which case
// upload storage is reported as "unchecked".
func NewHandler(client *mongo.Client, files *filestore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Files:   files,
		Log:     logger,
		started: time.Now(),
	}
}

type status struct {
	Database      string `json:"database"`
	Storage       string `json:"storage"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Serve handles GET /health. Any failed dependency turns the response into
// a 503 with success=false; the data block is present either way.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Cache-Control", "no-store")

	st := status{
		Database:      "connected",
		Storage:       "unchecked",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	healthy := true

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		st.Database = "disconnected"
		healthy = false
	}
	if h.Files != nil {
		st.Storage = "writable"
		if err := h.Files.Check(ctx); err != nil {
			h.Log.Error("health-check: upload store unusable", zap.Error(err))
			st.Storage = "unavailable"
			healthy = false
		}
	}

	if !healthy {
		respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{Message: "Service unavailable", Data: st})
		return
	}
	respond.OK(w, "ok", st)
}
