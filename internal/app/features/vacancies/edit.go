// internal/app/features/vacancies/edit.go
package vacancies

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/app/system/txn"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/vacancies. The body is multipart with
// designation, platforms, description and status fields plus an optional
// "document" file; a JSON body without a file is accepted too.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in vacancyInput
	multipart := shared.IsMultipart(r)
	if multipart {
		if !shared.ParseMultipart(w, r, h.Files.MaxBytes()) {
			return
		}
		in = fromForm(r)
	} else if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v := models.Vacancy{
		Designation: in.Designation,
		Platforms:   in.Platforms,
		Description: in.Description,
		Status:      in.Status,
	}
	v.CreatedByID, v.CreatedByName = shared.Actor(r)

	if multipart {
		f, fh, err := shared.FormFile(r, "document")
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "Could not read the uploaded document.")
			return
		}
		if f != nil {
			defer f.Close()
			obj, err := h.Files.Put(ctx, DocumentDir, fh.Filename, f)
			if err != nil {
				shared.UploadFailed(w, r, h.ErrLog, err)
				return
			}
			v.DocumentPath, v.DocumentName, v.DocumentSize = obj.Path, obj.Name, obj.Size
			v.DocumentContentType, v.DocumentURL = obj.ContentType, obj.URL
		}
	}

	created, err := h.Vacancies.Create(ctx, v)
	if err != nil {
		shared.Discard(ctx, h.Files, h.Log, v.DocumentPath)
		h.ErrLog.LogServerError(w, r, "create vacancy", err, "")
		return
	}
	h.AuditLog.VacancyCreated(ctx, r, created.ID, created.Designation)
	respond.Created(w, "Vacancy created.", created)
}

// HandleStatus handles PATCH /api/vacancies/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in statusInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.Status = normalize.Status(in.Status)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Vacancies.SetStatus(ctx, id, in.Status); err != nil {
		h.writeStoreError(w, r, "set vacancy status", err)
		return
	}
	h.AuditLog.VacancyStatusChanged(ctx, r, id, in.Status)
	respond.OK(w, "Vacancy "+in.Status+".", map[string]string{"id": id.Hex(), "status": in.Status})
}

// HandleDelete handles DELETE /api/vacancies/{id}. Candidates linked to the
// vacancy are unlinked and the vacancy removed in one transaction where the
// server supports it; the stored document is removed afterwards.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.Vacancies.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load vacancy", err)
		return
	}

	var unlinked int64
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Candidates.UnlinkVacancy(ctx, id)
		if err != nil {
			return err
		}
		deleted, err := h.Vacancies.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return vacancystore.ErrNotFound
		}
		unlinked = n
		return nil
	})
	if err != nil {
		h.writeStoreError(w, r, "delete vacancy", err)
		return
	}

	shared.Discard(ctx, h.Files, h.Log, v.DocumentPath)
	h.AuditLog.VacancyDeleted(ctx, r, id, v.Designation, unlinked)
	h.Log.Info("vacancy deleted",
		zap.String("vacancy_id", id.Hex()),
		zap.Int64("candidates_unlinked", unlinked))
	respond.OK(w, "Vacancy deleted.", map[string]any{"id": id.Hex(), "candidates_unlinked": unlinked})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, vacancystore.ErrNotFound) {
		respond.Fail(w, http.StatusNotFound, "Vacancy not found.")
		return
	}
	h.ErrLog.LogServerError(w, r, op, err, "")
}
