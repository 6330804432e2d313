// internal/domain/models/employee.go
package models

// Terminology: Employee Identifiers
//   - EmployeeID / employee_id: The MongoDB ObjectID (_id) of an employee record
//   - LoginCode / login_code: The generated code an employee signs in with (e.g. RM0007)

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a member of office staff. It is also the sign-in identity:
// LoginCode plus PasswordHash authenticate the session.
type Employee struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Personal PersonalInfo       `bson:"personal" json:"personal"`
	Official OfficialInfo       `bson:"official" json:"official"`
	Bank     BankInfo           `bson:"bank" json:"bank"`

	LoginCode    string `bson:"login_code" json:"login_code"`
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	Status       string `bson:"status" json:"status"` // active | disabled

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// PersonalInfo holds identity and contact details.
type PersonalInfo struct {
	FullName     string     `bson:"full_name" json:"full_name"`
	FullNameCI   string     `bson:"full_name_ci" json:"-"`
	Email        string     `bson:"email" json:"email"`
	EmailCI      string     `bson:"email_ci" json:"-"`
	Phone        string     `bson:"phone" json:"phone"`
	Gender       string     `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth  *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Address      string     `bson:"address,omitempty" json:"address,omitempty"`
	PANNumber    string     `bson:"pan_number,omitempty" json:"pan_number,omitempty"`
	AadhaarLast4 string     `bson:"aadhaar_last4,omitempty" json:"aadhaar_last4,omitempty"`
}

// OfficialInfo holds the employee's position in the office.
// Designation is derived from Role and never taken from input.
type OfficialInfo struct {
	Role          string              `bson:"role" json:"role"`
	Designation   string              `bson:"designation" json:"designation"`
	Department    string              `bson:"department,omitempty" json:"department,omitempty"`
	DateOfJoining *time.Time          `bson:"date_of_joining,omitempty" json:"date_of_joining,omitempty"`
	ReportingTo   *primitive.ObjectID `bson:"reporting_to,omitempty" json:"reporting_to,omitempty"`
}

// BankInfo holds salary account details.
type BankInfo struct {
	AccountHolder string `bson:"account_holder,omitempty" json:"account_holder,omitempty"`
	AccountNumber string `bson:"account_number,omitempty" json:"account_number,omitempty"`
	IFSC          string `bson:"ifsc,omitempty" json:"ifsc,omitempty"`
	BankName      string `bson:"bank_name,omitempty" json:"bank_name,omitempty"`
	Branch        string `bson:"branch,omitempty" json:"branch,omitempty"`
}

// IsActive reports whether the employee may sign in.
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive && e.DeletedAt == nil
}

const (
	EmployeeActive   = "active"
	EmployeeDisabled = "disabled"
)

// Employee roles.
const (
	RoleAdmin      = "admin"
	RoleHR         = "hr"
	RoleManager    = "manager"
	RoleRM         = "rm"
	RoleTelecaller = "telecaller"
	RoleOperations = "operations"
)

type roleInfo struct {
	designation string
	prefix      string
}

var roleTable = map[string]roleInfo{
	RoleAdmin:      {"Administrator", "ADM"},
	RoleHR:         {"HR Executive", "HR"},
	RoleManager:    {"Branch Manager", "MGR"},
	RoleRM:         {"Relationship Manager", "RM"},
	RoleTelecaller: {"Tele Caller", "TC"},
	RoleOperations: {"Operations Executive", "OPS"},
}

// Roles lists every employee role.
var Roles = []string{RoleAdmin, RoleHR, RoleManager, RoleRM, RoleTelecaller, RoleOperations}

// IsValidRole reports whether role is a known employee role.
func IsValidRole(role string) bool {
	_, ok := roleTable[role]
	return ok
}

// DesignationForRole returns the designation an employee with role holds.
// Unknown roles return "".
func DesignationForRole(role string) string {
	return roleTable[role].designation
}

// LoginCodePrefix returns the login-code prefix for role. Unknown roles
// fall back to "EMP".
func LoginCodePrefix(role string) string {
	if ri, ok := roleTable[role]; ok {
		return ri.prefix
	}
	return "EMP"
}
