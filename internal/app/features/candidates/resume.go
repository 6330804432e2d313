// internal/app/features/candidates/resume.go
package candidates

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
)

// HandleResume handles POST /api/candidates/{id}/resume (multipart, field
// "resume"). The new file replaces the old one, which is then removed.
func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	if !shared.ParseMultipart(w, r, h.Files.MaxBytes()) {
		return
	}
	f, fh, err := shared.FormFile(r, "resume")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Could not read the uploaded resume.")
		return
	}
	if f == nil {
		respond.Fail(w, http.StatusBadRequest, "A resume file is required.")
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Reject unknown candidates before writing anything.
	if _, err := h.Candidates.GetByID(ctx, id); err != nil {
		h.writeStoreError(w, r, "load candidate", err)
		return
	}

	obj, err := h.Files.Put(ctx, ResumeDir, fh.Filename, f)
	if err != nil {
		shared.UploadFailed(w, r, h.ErrLog, err)
		return
	}
	prev, err := h.Candidates.SetResume(ctx, id, candidatestore.Resume{
		Path: obj.Path,
		Name: obj.Name,
		Size: obj.Size,
		URL:  obj.URL,
	})
	if err != nil {
		shared.Discard(ctx, h.Files, h.Log, obj.Path)
		h.writeStoreError(w, r, "set candidate resume", err)
		return
	}
	if prev != obj.Path {
		shared.Discard(ctx, h.Files, h.Log, prev)
	}
	respond.OK(w, "Resume uploaded.", resumeView{
		ID:         id.Hex(),
		ResumeName: obj.Name,
		ResumeSize: obj.Size,
		ResumeURL:  obj.URL,
	})
}
