// internal/app/features/contacts/types.go
package contacts

import (
	"strings"

	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/domain/models"
)

type contactInput struct {
	FullName     string `json:"full_name" validate:"required,max=120" label:"Full name"`
	Phone        string `json:"phone" validate:"required,phone" label:"Phone"`
	Email        string `json:"email" validate:"omitempty,emailaddr,max=254" label:"Email"`
	City         string `json:"city" validate:"max=80" label:"City"`
	Occupation   string `json:"occupation" validate:"max=80" label:"Occupation"`
	AnnualIncome int64  `json:"annual_income" validate:"min=0" label:"Annual income"`
	Stage        string `json:"stage,omitempty" validate:"omitempty,funnelstage" label:"Stage"`
	Source       string `json:"source" validate:"max=60" label:"Source"`
	Notes        string `json:"notes" validate:"max=2000" label:"Notes"`
}

func (in *contactInput) clean() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = inputval.NormalizePhone(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.City = strings.TrimSpace(in.City)
	in.Occupation = strings.TrimSpace(in.Occupation)
	in.Stage = strings.ToLower(strings.TrimSpace(in.Stage))
	in.Source = strings.TrimSpace(in.Source)
	in.Notes = htmlsanitize.PlainText(in.Notes)
}

func (in contactInput) toModel() models.Contact {
	return models.Contact{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        in.Email,
		City:         in.City,
		Occupation:   in.Occupation,
		AnnualIncome: in.AnnualIncome,
		Stage:        in.Stage,
		Source:       in.Source,
		Notes:        in.Notes,
	}
}

type stageInput struct {
	Stage string `json:"stage" validate:"required,funnelstage" label:"Stage"`
}

// stageView is the response to a stage change. Unassigned is set when the
// change dropped the contact's RM.
type stageView struct {
	ID         string `json:"id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Unassigned bool   `json:"unassigned"`
}
