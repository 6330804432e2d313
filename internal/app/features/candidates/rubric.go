// internal/app/features/candidates/rubric.go
package candidates

import (
	"net/http"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
)

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type rubricView struct {
	scoring.Rubric
	Stages  []option `json:"stages"`
	Sources []string `json:"sources"`
}

// ServeRubric handles GET /api/candidates/rubric: the point tables and the
// stage and source enumerations a client needs to render the form.
func (h *Handler) ServeRubric(w http.ResponseWriter, r *http.Request) {
	stages := make([]option, 0, len(models.CandidateStages))
	for _, s := range models.CandidateStages {
		stages = append(stages, option{Value: s, Label: models.CandidateStageLabel(s)})
	}
	respond.OK(w, "", rubricView{
		Rubric:  scoring.DescribeRubric(),
		Stages:  stages,
		Sources: models.CandidateSources,
	})
}

// HandleScore handles POST /api/candidates/score: the score a rubric would
// receive, without storing anything.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var in rubricInput
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Invalid(w, res)
		return
	}
	respond.OK(w, "", scoring.Score(in.scoring()))
}
