// internal/app/features/candidates/types.go
package candidates

import (
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
)

// rubricInput is the score preview body.
type rubricInput struct {
	Education             string                       `json:"education" validate:"omitempty,education" label:"Education"`
	ExperienceBand        string                       `json:"experience_band" validate:"omitempty,experienceband" label:"Experience"`
	ExperienceFields      models.ExperienceFields      `json:"experience_fields"`
	OperationalActivities models.OperationalActivities `json:"operational_activities"`
}

func (in rubricInput) scoring() scoring.Input {
	return scoring.Input{
		Education:             in.Education,
		ExperienceBand:        in.ExperienceBand,
		ExperienceFields:      in.ExperienceFields,
		OperationalActivities: in.OperationalActivities,
	}
}

// candidateInput is the create/update body. total_marks is always derived.
type candidateInput struct {
	FullName    string     `json:"full_name" validate:"required,max=120" label:"Full name"`
	Email       string     `json:"email" validate:"omitempty,emailaddr,max=254" label:"Email"`
	Phone       string     `json:"phone" validate:"required,phone" label:"Phone"`
	City        string     `json:"city" validate:"max=80" label:"City"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other" label:"Gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	VacancyID   string     `json:"vacancy_id" validate:"omitempty,objectid" label:"Vacancy"`
	AppliedFor  string     `json:"applied_for" validate:"max=120" label:"Applied for"`
	Source      string     `json:"source" validate:"omitempty,source" label:"Source"`

	Education             string                       `json:"education" validate:"omitempty,education" label:"Education"`
	ExperienceBand        string                       `json:"experience_band" validate:"omitempty,experienceband" label:"Experience"`
	ExperienceFields      models.ExperienceFields      `json:"experience_fields"`
	OperationalActivities models.OperationalActivities `json:"operational_activities"`

	CurrentStage string     `json:"current_stage" validate:"omitempty,candidatestage" label:"Stage"`
	Remarks      string     `json:"remarks" validate:"max=2000" label:"Remarks"`
	InterviewAt  *time.Time `json:"interview_at"`
}

func (in *candidateInput) clean() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = inputval.NormalizePhone(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	in.VacancyID = strings.TrimSpace(in.VacancyID)
	in.AppliedFor = strings.TrimSpace(in.AppliedFor)
	in.Source = strings.ToLower(strings.TrimSpace(in.Source))
	in.Education = strings.ToLower(strings.TrimSpace(in.Education))
	in.ExperienceBand = strings.ToLower(strings.TrimSpace(in.ExperienceBand))
	in.CurrentStage = strings.ToLower(strings.TrimSpace(in.CurrentStage))
	in.Remarks = htmlsanitize.PlainText(in.Remarks)
}

func (in candidateInput) toModel() models.Candidate {
	return models.Candidate{
		FullName:              in.FullName,
		Email:                 in.Email,
		Phone:                 in.Phone,
		City:                  in.City,
		Gender:                in.Gender,
		DateOfBirth:           in.DateOfBirth,
		VacancyID:             shared.OptionalID(in.VacancyID),
		AppliedFor:            in.AppliedFor,
		Source:                in.Source,
		Education:             in.Education,
		ExperienceBand:        in.ExperienceBand,
		ExperienceFields:      in.ExperienceFields,
		OperationalActivities: in.OperationalActivities,
		CurrentStage:          in.CurrentStage,
		Remarks:               in.Remarks,
		InterviewAt:           in.InterviewAt,
	}
}

type stageInput struct {
	Stage   string `json:"stage" validate:"required,candidatestage" label:"Stage"`
	Remarks string `json:"remarks" validate:"max=2000" label:"Remarks"`
}

// resumeView is returned after a resume upload.
type resumeView struct {
	ID         string `json:"id"`
	ResumeName string `json:"resume_name"`
	ResumeSize int64  `json:"resume_size"`
	ResumeURL  string `json:"resume_url"`
}
