// internal/domain/models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is uploaded-file metadata for office rules and future plans.
// Both kinds share this shape and live in separate collections.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	FilePath        string `bson:"file_path" json:"-"`
	FileName        string `bson:"file_name" json:"file_name"`
	FileSize        int64  `bson:"file_size" json:"file_size"`
	FileContentType string `bson:"file_content_type,omitempty" json:"file_content_type,omitempty"`
	FileURL         string `bson:"file_url" json:"file_url"`

	ApprovalStatus  string              `bson:"approval_status" json:"approval_status"`
	ApprovalRemarks string              `bson:"approval_remarks,omitempty" json:"approval_remarks,omitempty"`
	ApprovedByID    *primitive.ObjectID `bson:"approved_by_id,omitempty" json:"approved_by_id,omitempty"`
	ApprovedByName  string              `bson:"approved_by_name,omitempty" json:"approved_by_name,omitempty"`
	ApprovedAt      *time.Time          `bson:"approved_at,omitempty" json:"approved_at,omitempty"`

	DownloadCount int64 `bson:"download_count" json:"download_count"`

	UploadedByID   *primitive.ObjectID `bson:"uploaded_by_id,omitempty" json:"uploaded_by_id,omitempty"`
	UploadedByName string              `bson:"uploaded_by_name,omitempty" json:"uploaded_by_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DocumentKind selects which document collection a store works on.
type DocumentKind string

const (
	DocumentKindRules      DocumentKind = "rules"
	DocumentKindFuturePlan DocumentKind = "future_plan"
)

// Collection returns the Mongo collection name for the kind.
func (k DocumentKind) Collection() string {
	switch k {
	case DocumentKindFuturePlan:
		return "future_plan_documents"
	default:
		return "rules_documents"
	}
}

// Approval statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// IsValidApprovalStatus reports whether s is a known approval status.
func IsValidApprovalStatus(s string) bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}
