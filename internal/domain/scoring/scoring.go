// Package scoring computes a candidate's total marks from the recruitment
// rubric. The rubric is a fixed weighted sum over categorical lookups and
// bounded ratings; the maximum total is MaxTotal.
package scoring

import "github.com/dalemusser/officehub/internal/domain/models"

// Education levels.
const (
	EducationBelow12th    = "below_12th"
	Education12th         = "12th"
	EducationGraduate     = "graduate"
	EducationPostGraduate = "post_graduate"
	EducationProfessional = "professional"
)

// Experience bands.
const (
	ExperienceFresher = "fresher"
	ExperienceUnder2  = "under_2y"
	Experience2To5    = "2_to_5y"
	ExperienceOver5   = "over_5y"
)

// Rating bounds for ExperienceFields and OperationalActivities entries.
const (
	MinRating = 0
	MaxRating = 5
)

// Section weights.
const (
	ExperienceFieldWeight     = 2
	OperationalActivityWeight = 1
)

// MaxTotal is the highest score the rubric can produce.
const MaxTotal = 100

var educationPoints = map[string]int{
	EducationBelow12th:    2,
	Education12th:         4,
	EducationGraduate:     6,
	EducationPostGraduate: 8,
	EducationProfessional: 10,
}

var experiencePoints = map[string]int{
	ExperienceFresher: 0,
	ExperienceUnder2:  4,
	Experience2To5:    7,
	ExperienceOver5:   10,
}

// Input is the subset of a candidate the rubric reads.
type Input struct {
	Education             string
	ExperienceBand        string
	ExperienceFields      models.ExperienceFields
	OperationalActivities models.OperationalActivities
}

// FromCandidate extracts rubric input from a candidate record.
func FromCandidate(c models.Candidate) Input {
	return Input{
		Education:             c.Education,
		ExperienceBand:        c.ExperienceBand,
		ExperienceFields:      c.ExperienceFields,
		OperationalActivities: c.OperationalActivities,
	}
}

// Breakdown is the per-section contribution to a total.
type Breakdown struct {
	Education             int `json:"education"`
	ExperienceBand        int `json:"experience_band"`
	ExperienceFields      int `json:"experience_fields"`
	OperationalActivities int `json:"operational_activities"`
	Total                 int `json:"total"`
}

// Score returns the per-section breakdown for in. Unknown categorical values
// score zero and out-of-range ratings are clamped to [MinRating, MaxRating].
func Score(in Input) Breakdown {
	b := Breakdown{
		Education:      educationPoints[in.Education],
		ExperienceBand: experiencePoints[in.ExperienceBand],
	}

	ef := in.ExperienceFields
	for _, v := range []int{ef.Insurance, ef.MutualFunds, ef.Banking, ef.RealEstate, ef.DirectSales} {
		b.ExperienceFields += clamp(v) * ExperienceFieldWeight
	}

	oa := in.OperationalActivities
	for _, v := range []int{oa.LeadGeneration, oa.ClientMeetings, oa.Documentation, oa.FollowUps, oa.CrossSelling, oa.TeamCoordination} {
		b.OperationalActivities += clamp(v) * OperationalActivityWeight
	}

	b.Total = b.Education + b.ExperienceBand + b.ExperienceFields + b.OperationalActivities
	return b
}

// Total returns the total marks for in.
func Total(in Input) int {
	return Score(in).Total
}

func clamp(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// IsValidEducation reports whether e is a known education level.
func IsValidEducation(e string) bool {
	_, ok := educationPoints[e]
	return ok
}

// IsValidExperienceBand reports whether b is a known experience band.
func IsValidExperienceBand(b string) bool {
	_, ok := experiencePoints[b]
	return ok
}

// Rubric describes the point tables, for clients that render the scoring form.
type Rubric struct {
	Education                 map[string]int `json:"education"`
	ExperienceBand            map[string]int `json:"experience_band"`
	ExperienceFields          []string       `json:"experience_fields"`
	ExperienceFieldWeight     int            `json:"experience_field_weight"`
	OperationalActivities     []string       `json:"operational_activities"`
	OperationalActivityWeight int            `json:"operational_activity_weight"`
	MinRating                 int            `json:"min_rating"`
	MaxRating                 int            `json:"max_rating"`
	MaxTotal                  int            `json:"max_total"`
}

// DescribeRubric returns a copy of the rubric tables.
func DescribeRubric() Rubric {
	edu := make(map[string]int, len(educationPoints))
	for k, v := range educationPoints {
		edu[k] = v
	}
	exp := make(map[string]int, len(experiencePoints))
	for k, v := range experiencePoints {
		exp[k] = v
	}
	return Rubric{
		Education:                 edu,
		ExperienceBand:            exp,
		ExperienceFields:          []string{"insurance", "mutual_funds", "banking", "real_estate", "direct_sales"},
		ExperienceFieldWeight:     ExperienceFieldWeight,
		OperationalActivities:     []string{"lead_generation", "client_meetings", "documentation", "follow_ups", "cross_selling", "team_coordination"},
		OperationalActivityWeight: OperationalActivityWeight,
		MinRating:                 MinRating,
		MaxRating:                 MaxRating,
		MaxTotal:                  MaxTotal,
	}
}
