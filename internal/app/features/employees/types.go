// internal/app/features/employees/types.go
package employees

import (
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/features/shared"
	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/domain/models"
)

// employeeInput is the create/update body. Designation and login code are
// never accepted from the client.
type employeeInput struct {
	Personal personalInput `json:"personal"`
	Official officialInput `json:"official"`
	Bank     bankInput     `json:"bank"`
	Password string        `json:"password,omitempty" validate:"max=128" label:"Password"`
}

type personalInput struct {
	FullName     string     `json:"full_name" validate:"required,max=120" label:"Full name"`
	Email        string     `json:"email" validate:"required,emailaddr,max=254" label:"Email"`
	Phone        string     `json:"phone" validate:"required,phone" label:"Phone"`
	Gender       string     `json:"gender" validate:"omitempty,oneof=male female other" label:"Gender"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Address      string     `json:"address" validate:"max=500" label:"Address"`
	PANNumber    string     `json:"pan_number" validate:"omitempty,pan" label:"PAN"`
	AadhaarLast4 string     `json:"aadhaar_last4" validate:"omitempty,aadhaar4" label:"Aadhaar"`
}

type officialInput struct {
	Role          string     `json:"role" validate:"required,role" label:"Role"`
	Department    string     `json:"department" validate:"max=80" label:"Department"`
	DateOfJoining *time.Time `json:"date_of_joining"`
	ReportingTo   string     `json:"reporting_to" validate:"omitempty,objectid" label:"Reporting to"`
}

type bankInput struct {
	AccountHolder string `json:"account_holder" validate:"max=120" label:"Account holder"`
	AccountNumber string `json:"account_number" validate:"omitempty,accountno" label:"Account number"`
	IFSC          string `json:"ifsc" validate:"omitempty,ifsc" label:"IFSC"`
	BankName      string `json:"bank_name" validate:"max=120" label:"Bank name"`
	Branch        string `json:"branch" validate:"max=120" label:"Branch"`
}

// clean trims and normalizes fields before validation.
func (in *employeeInput) clean() {
	p := &in.Personal
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = inputval.NormalizePhone(p.Phone)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.Address = htmlsanitize.PlainText(p.Address)
	p.PANNumber = strings.ToUpper(strings.TrimSpace(p.PANNumber))
	p.AadhaarLast4 = strings.TrimSpace(p.AadhaarLast4)

	o := &in.Official
	o.Role = strings.ToLower(strings.TrimSpace(o.Role))
	o.Department = strings.TrimSpace(o.Department)
	o.ReportingTo = strings.TrimSpace(o.ReportingTo)

	b := &in.Bank
	b.AccountHolder = strings.TrimSpace(b.AccountHolder)
	b.AccountNumber = strings.TrimSpace(b.AccountNumber)
	b.IFSC = strings.ToUpper(strings.TrimSpace(b.IFSC))
	b.BankName = strings.TrimSpace(b.BankName)
	b.Branch = strings.TrimSpace(b.Branch)
}

func (in employeeInput) toModel() models.Employee {
	return models.Employee{
		Personal: models.PersonalInfo{
			FullName:     in.Personal.FullName,
			Email:        in.Personal.Email,
			Phone:        in.Personal.Phone,
			Gender:       in.Personal.Gender,
			DateOfBirth:  in.Personal.DateOfBirth,
			Address:      in.Personal.Address,
			PANNumber:    in.Personal.PANNumber,
			AadhaarLast4: in.Personal.AadhaarLast4,
		},
		Official: models.OfficialInfo{
			Role:          in.Official.Role,
			Department:    in.Official.Department,
			DateOfJoining: in.Official.DateOfJoining,
			ReportingTo:   shared.OptionalID(in.Official.ReportingTo),
		},
		Bank: models.BankInfo{
			AccountHolder: in.Bank.AccountHolder,
			AccountNumber: in.Bank.AccountNumber,
			IFSC:          in.Bank.IFSC,
			BankName:      in.Bank.BankName,
			Branch:        in.Bank.Branch,
		},
	}
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=active disabled" label:"Status"`
}

type passwordInput struct {
	Password string `json:"password" validate:"required,max=128" label:"Password"`
}
