// internal/domain/models/candidate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate is a person moving through the recruitment pipeline.
//
// TotalMarks is derived from the rubric inputs (Education, ExperienceBand,
// ExperienceFields, OperationalActivities) and is recomputed by the store on
// every write; callers never set it directly.
type Candidate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone" json:"phone"`
	City       string             `bson:"city,omitempty" json:"city,omitempty"`
	Gender     string             `bson:"gender,omitempty" json:"gender,omitempty"`

	DateOfBirth *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`

	VacancyID  *primitive.ObjectID `bson:"vacancy_id,omitempty" json:"vacancy_id,omitempty"`
	AppliedFor string              `bson:"applied_for,omitempty" json:"applied_for,omitempty"`
	Source     string              `bson:"source,omitempty" json:"source,omitempty"`

	// Rubric inputs
	Education             string                `bson:"education" json:"education"`
	ExperienceBand        string                `bson:"experience_band" json:"experience_band"`
	ExperienceFields      ExperienceFields      `bson:"experience_fields" json:"experience_fields"`
	OperationalActivities OperationalActivities `bson:"operational_activities" json:"operational_activities"`
	TotalMarks            int                   `bson:"total_marks" json:"total_marks"`

	CurrentStage string        `bson:"current_stage" json:"current_stage"`
	StageHistory []StageChange `bson:"stage_history,omitempty" json:"stage_history,omitempty"`
	Remarks      string        `bson:"remarks,omitempty" json:"remarks,omitempty"`
	InterviewAt  *time.Time    `bson:"interview_at,omitempty" json:"interview_at,omitempty"`

	// Resume upload, set when a file accompanies the candidate.
	ResumePath string `bson:"resume_path,omitempty" json:"-"`
	ResumeName string `bson:"resume_name,omitempty" json:"resume_name,omitempty"`
	ResumeSize int64  `bson:"resume_size,omitempty" json:"resume_size,omitempty"`
	ResumeURL  string `bson:"resume_url,omitempty" json:"resume_url,omitempty"`

	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedByID   *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string              `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`
}

// HasResume reports whether a resume file is stored for this candidate.
func (c *Candidate) HasResume() bool {
	return c.ResumePath != ""
}

// ExperienceFields rates prior domain experience, each on a 0..5 scale.
type ExperienceFields struct {
	Insurance   int `bson:"insurance" json:"insurance" validate:"min=0,max=5" label:"Insurance experience"`
	MutualFunds int `bson:"mutual_funds" json:"mutual_funds" validate:"min=0,max=5" label:"Mutual funds experience"`
	Banking     int `bson:"banking" json:"banking" validate:"min=0,max=5" label:"Banking experience"`
	RealEstate  int `bson:"real_estate" json:"real_estate" validate:"min=0,max=5" label:"Real estate experience"`
	DirectSales int `bson:"direct_sales" json:"direct_sales" validate:"min=0,max=5" label:"Direct sales experience"`
}

// OperationalActivities rates day-to-day sales operations, each on a 0..5 scale.
type OperationalActivities struct {
	LeadGeneration   int `bson:"lead_generation" json:"lead_generation" validate:"min=0,max=5" label:"Lead generation"`
	ClientMeetings   int `bson:"client_meetings" json:"client_meetings" validate:"min=0,max=5" label:"Client meetings"`
	Documentation    int `bson:"documentation" json:"documentation" validate:"min=0,max=5" label:"Documentation"`
	FollowUps        int `bson:"follow_ups" json:"follow_ups" validate:"min=0,max=5" label:"Follow-ups"`
	CrossSelling     int `bson:"cross_selling" json:"cross_selling" validate:"min=0,max=5" label:"Cross-selling"`
	TeamCoordination int `bson:"team_coordination" json:"team_coordination" validate:"min=0,max=5" label:"Team coordination"`
}

// StageChange records one overwrite of Candidate.CurrentStage.
type StageChange struct {
	Stage         string              `bson:"stage" json:"stage"`
	Remarks       string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	ChangedByID   *primitive.ObjectID `bson:"changed_by_id,omitempty" json:"changed_by_id,omitempty"`
	ChangedByName string              `bson:"changed_by_name,omitempty" json:"changed_by_name,omitempty"`
	ChangedAt     time.Time           `bson:"changed_at" json:"changed_at"`
}

// Candidate stages. Any stage may overwrite any other; the order below is
// the usual flow and is used for display and reporting.
const (
	StageCareerEnquiry     = "career_enquiry"
	StageResumeShortlisted = "resume_shortlisted"
	StageInterviewProcess  = "interview_process"
	StageSelected          = "selected"
	StageJoining           = "joining"
	StageRejected          = "rejected"
)

// CandidateStages lists the valid stages in pipeline order.
var CandidateStages = []string{
	StageCareerEnquiry,
	StageResumeShortlisted,
	StageInterviewProcess,
	StageSelected,
	StageJoining,
	StageRejected,
}

var candidateStageLabels = map[string]string{
	StageCareerEnquiry:     "Career Enquiry",
	StageResumeShortlisted: "Resume Shortlisted",
	StageInterviewProcess:  "Interview Process",
	StageSelected:          "Selected",
	StageJoining:           "Joining Data",
	StageRejected:          "Rejected",
}

// IsValidCandidateStage reports whether s is a known candidate stage.
func IsValidCandidateStage(s string) bool {
	_, ok := candidateStageLabels[s]
	return ok
}

// CandidateStageLabel returns the display label for a stage, or s itself.
func CandidateStageLabel(s string) string {
	if l, ok := candidateStageLabels[s]; ok {
		return l
	}
	return s
}

// Gender values.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)
