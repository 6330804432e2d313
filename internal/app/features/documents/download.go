// internal/app/features/documents/download.go
package documents

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeDownload handles GET /{id}/download. The counter is bumped only
// once the stored file has been opened.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Documents.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load document", err)
		return
	}

	f, err := h.Files.Open(ctx, d.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.Log.Warn("document file missing",
				zap.String("document_id", id.Hex()),
				zap.String("path", d.FilePath))
			respond.Fail(w, http.StatusNotFound, "File not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "open document file", err, "")
		return
	}
	defer f.Close()

	if _, err := h.Documents.IncrementDownload(ctx, id); err != nil {
		h.writeStoreError(w, r, "count download", err)
		return
	}

	if d.FileContentType != "" {
		w.Header().Set("Content-Type", d.FileContentType)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.FileName}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, d.FileName, d.UpdatedAt, f)
}
