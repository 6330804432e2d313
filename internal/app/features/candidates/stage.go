// internal/app/features/candidates/stage.go
package candidates

import (
	"context"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
)

type stageView struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// HandleStage handles PATCH /api/candidates/{id}/stage. Any stage may
// replace any other; every change is appended to the stage history.
func (h *Handler) HandleStage(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IDParam(w, r, "id")
	if !ok {
		return
	}
	var in stageInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	in.Stage = normalize.Stage(in.Stage)
	in.Remarks = htmlsanitize.PlainText(in.Remarks)
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	change := models.StageChange{Stage: in.Stage, Remarks: in.Remarks}
	change.ChangedByID, change.ChangedByName = shared.Actor(r)

	prev, err := h.Candidates.SetStage(ctx, id, change)
	if err != nil {
		h.writeStoreError(w, r, "set candidate stage", err)
		return
	}
	h.AuditLog.CandidateStageChanged(ctx, r, id, prev, in.Stage)
	respond.OK(w, "Stage updated.", stageView{
		ID:    id.Hex(),
		From:  prev,
		To:    in.Stage,
		Label: models.CandidateStageLabel(in.Stage),
	})
}
