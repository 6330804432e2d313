// internal/domain/models/rm_assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RMAssignment maps one prospect to the relationship manager who owns it.
// ProspectID is unique across the collection: reassigning overwrites.
type RMAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProspectID primitive.ObjectID `bson:"prospect_id" json:"prospect_id"`
	RMID       primitive.ObjectID `bson:"rm_id" json:"rm_id"`
	RMName     string             `bson:"rm_name,omitempty" json:"rm_name,omitempty"`

	AssignedAt     time.Time           `bson:"assigned_at" json:"assigned_at"`
	AssignedByID   *primitive.ObjectID `bson:"assigned_by_id,omitempty" json:"assigned_by_id,omitempty"`
	AssignedByName string              `bson:"assigned_by_name,omitempty" json:"assigned_by_name,omitempty"`
}
