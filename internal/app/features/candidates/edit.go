// internal/app/features/candidates/edit.go
package candidates

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	vacancystore "github.com/dalemusser/officehub/internal/app/store/vacancies"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/candidates. The body is either JSON or
// multipart/form-data with the record as JSON in the "data" field and an
// optional "resume" file. The stored file is removed again if the insert
// fails.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in candidateInput
	multipart := shared.IsMultipart(r)
	if multipart {
		if !shared.ParseMultipart(w, r, h.Files.MaxBytes()) || !shared.DecodeFormJSON(w, r, "data", &in) {
			return
		}
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

	if !h.checkVacancy(ctx, w, r, in.VacancyID) {
		return
	}

	c := in.toModel()
	c.CreatedByID, c.CreatedByName = shared.Actor(r)

	if multipart {
		f, fh, err := shared.FormFile(r, "resume")
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "Could not read the uploaded resume.")
			return
		}
		if f != nil {
			defer f.Close()
			obj, err := h.Files.Put(ctx, ResumeDir, fh.Filename, f)
			if err != nil {
				shared.UploadFailed(w, r, h.ErrLog, err)
				return
			}
			c.ResumePath, c.ResumeName, c.ResumeSize, c.ResumeURL = obj.Path, obj.Name, obj.Size, obj.URL
		}
	}

	created, err := h.Candidates.Create(ctx, c)
	if err != nil {
		shared.Discard(ctx, h.Files, h.Log, c.ResumePath)
		h.writeStoreError(w, r, "create candidate", err)
		return
	}
	h.AuditLog.CandidateCreated(ctx, r, created.ID, created.FullName, created.TotalMarks)
	h.Log.Info("candidate created",
		zap.String("candidate_id", created.ID.Hex()),
		zap.Int("total_marks", created.TotalMarks))

	respond.Created(w, "Candidate created.", created)
}

// ServeGet handles GET /api/candidates/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Candidates.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "load candidate", err)
		return
	}
	respond.OK(w, "", c)
}

// HandleUpdate handles PUT /api/candidates/{id}. total_marks is recomputed
// from the submitted rubric. The stage has its own endpoint.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in candidateInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.clean()
	res := inputval.Validate(in)
	if in.CurrentStage != "" {
		res.Add("current_stage", "Use the stage endpoint to change the stage.")
	}
	if res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.checkVacancy(ctx, w, r, in.VacancyID) {
		return
	}
	updated, err := h.Candidates.Update(ctx, id, in.toModel())
	if err != nil {
		h.writeStoreError(w, r, "update candidate", err)
		return
	}
	h.AuditLog.CandidateUpdated(ctx, r, updated.ID, updated.TotalMarks)
	respond.OK(w, "Candidate updated.", updated)
}

// HandleDelete handles DELETE /api/candidates/{id}. The record is removed
// and its resume file with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Candidates.Delete(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, "delete candidate", err)
		return
	}
	shared.Discard(ctx, h.Files, h.Log, c.ResumePath)
	h.AuditLog.CandidateDeleted(ctx, r, c.ID, c.FullName)
	respond.OK(w, "Candidate deleted.", map[string]string{"id": c.ID.Hex()})
}

// checkVacancy verifies that a referenced vacancy exists. On failure it
// writes the response and returns false.
func (h *Handler) checkVacancy(ctx context.Context, w http.ResponseWriter, r *http.Request, hex string) bool {
	vid := shared.OptionalID(hex)
	if vid == nil {
		return true
	}
	_, err := h.Vacancies.GetByID(ctx, *vid)
	switch {
	case err == nil:
		return true
	case errors.Is(err, vacancystore.ErrNotFound):
		var res inputval.Result
		res.Add("vacancy_id", "Vacancy not found.")
		respond.Invalid(w, res)
	default:
		h.ErrLog.LogServerError(w, r, "load vacancy", err, "")
	}
	return false
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, candidatestore.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, "Candidate not found.")
	case errors.Is(err, candidatestore.ErrInvalidStage):
		var res inputval.Result
		res.Add("stage", "Unknown candidate stage.")
		respond.Invalid(w, res)
	default:
		h.ErrLog.LogServerError(w, r, op, err, "")
	}
}
