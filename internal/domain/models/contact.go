// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a person in the sales funnel: a suspect, prospect, or client.
type Contact struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Occupation   string             `bson:"occupation,omitempty" json:"occupation,omitempty"`
	AnnualIncome int64              `bson:"annual_income,omitempty" json:"annual_income,omitempty"`
	Stage        string             `bson:"stage" json:"stage"`
	Source       string             `bson:"source,omitempty" json:"source,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedByID   *primitive.ObjectID `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedByName string              `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`
}

// Funnel stages, in order.
const (
	FunnelSuspect  = "suspect"
	FunnelProspect = "prospect"
	FunnelClient   = "client"
)

// FunnelStages lists the funnel stages in order.
var FunnelStages = []string{FunnelSuspect, FunnelProspect, FunnelClient}

// IsValidFunnelStage reports whether s is a known funnel stage.
func IsValidFunnelStage(s string) bool {
	return contains(FunnelStages, s)
}

// NextFunnelStage returns the stage after s and true, or "" and false when s
// is the last stage or unknown.
func NextFunnelStage(s string) (string, bool) {
	for i, st := range FunnelStages {
		if st == s && i+1 < len(FunnelStages) {
			return FunnelStages[i+1], true
		}
	}
	return "", false
}

// IsAssignable reports whether a contact in stage s can have an RM.
func IsAssignable(s string) bool {
	return s == FunnelProspect || s == FunnelClient
}
