// internal/domain/models/vacancy.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vacancy is an open position advertised on one or more platforms,
// optionally with an uploaded job-description document.
type Vacancy struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Designation   string             `bson:"designation" json:"designation"`
	DesignationCI string             `bson:"designation_ci" json:"-"`
	Platforms     []string           `bson:"platforms" json:"platforms"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Status        string             `bson:"status" json:"status"` // open | closed

	DocumentPath        string `bson:"document_path,omitempty" json:"-"`
	DocumentName        string `bson:"document_name,omitempty" json:"document_name,omitempty"`
	DocumentSize        int64  `bson:"document_size,omitempty" json:"document_size,omitempty"`
	DocumentContentType string `bson:"document_content_type,omitempty" json:"document_content_type,omitempty"`
	DocumentURL         string `bson:"document_url,omitempty" json:"document_url,omitempty"`

	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedByID   *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string              `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`
}

// HasDocument reports whether a file is stored for this vacancy.
func (v *Vacancy) HasDocument() bool {
	return v.DocumentPath != ""
}

const (
	VacancyOpen   = "open"
	VacancyClosed = "closed"
)

// IsValidVacancyStatus reports whether s is "open" or "closed".
func IsValidVacancyStatus(s string) bool {
	return s == VacancyOpen || s == VacancyClosed
}
