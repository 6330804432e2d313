// internal/app/features/documents/edit.go
package documents

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	documentstore "github.com/dalemusser/officehub/internal/app/store/documents"
	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpload handles POST / with a multipart body: title, description
// and the "file" part. New documents start pending approval.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMultipart(r) {
		respond.Fail(w, http.StatusUnsupportedMediaType, "Expected a multipart/form-data upload.")
		return
	}
	if !shared.ParseMultipart(w, r, h.Files.MaxBytes()) {
		return
	}
	in := fromForm(r)
	res := inputval.Validate(in)

	f, fh, err := shared.FormFile(r, "file")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}
	if f == nil {
		res.Add("file", "File is required.")
	} else {
		defer f.Close()
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	obj, err := h.Files.Put(ctx, h.dir(), fh.Filename, f)
	if err != nil {
		shared.UploadFailed(w, r, h.ErrLog, err)
		return
	}

	d := models.Document{
		ID:              primitive.NewObjectID(),
		Title:           in.Title,
		Description:     in.Description,
		FilePath:        obj.Path,
		FileName:        obj.Name,
		FileSize:        obj.Size,
		FileContentType: obj.ContentType,
	}
	d.FileURL = h.downloadURL(d.ID)
	d.UploadedByID, d.UploadedByName = shared.Actor(r)

	created, err := h.Documents.Create(ctx, d)
	if err != nil {
		shared.Discard(ctx, h.Files, h.Log, obj.Path)
		h.ErrLog.LogServerError(w, r, "create document", err, "")
		return
	}
	h.AuditLog.DocumentUploaded(ctx, r, string(h.Kind), created.ID, created.Title)
	respond.Created(w, h.label()+" uploaded.", created)
}

// HandleApproval handles PATCH /{id}/approval.
func (h *Handler) HandleApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in approvalInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.Status = normalize.Status(in.Status)
	in.Remarks = htmlsanitize.PlainText(in.Remarks)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	byID, byName := shared.Actor(r)
	d, err := h.Documents.SetApproval(ctx, id, documentstore.Approval{
		Status:  in.Status,
		Remarks: in.Remarks,
		ByID:    byID,
		ByName:  byName,
	})
	if err != nil {
		h.writeStoreError(w, r, "set document approval", err)
		return
	}
	h.AuditLog.DocumentApprovalChanged(ctx, r, string(h.Kind), id, in.Status)
	respond.OK(w, h.label()+" marked "+in.Status+".", d)
}

// HandleDelete handles DELETE /{id} and removes the stored file.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Documents.Delete(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "delete document", err)
		return
	}
	shared.Discard(ctx, h.Files, h.Log, d.FilePath)
	h.AuditLog.DocumentDeleted(ctx, r, string(h.Kind), id, d.Title)
	h.Log.Info("document deleted", zap.String("document_id", id.Hex()))
	respond.OK(w, h.label()+" deleted.", map[string]string{"id": id.Hex()})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, documentstore.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, h.label()+" not found.")
	case errors.Is(err, documentstore.ErrBadApproval):
		respond.Fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.ErrLog.LogServerError(w, r, op, err, "")
	}
}
