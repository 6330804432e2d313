package employeestore

import (
	"context"

	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/officehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher loads fresh employee data on each request for the session layer.
type Fetcher struct {
	c *mongo.Collection
}

// NewFetcher creates a Fetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{c: db.Collection("employees")}
}

// FetchUser has the auth.UserFetcher signature; pass it as a method
// value to SessionManager.SetUserFetcher. Missing, disabled and deleted
// employees yield (nil, nil), which ends the session.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var e models.Employee
	proj := options.FindOne().SetProjection(bson.M{
		"_id":                1,
		"personal.full_name": 1,
		"personal.email":     1,
		"login_code":         1,
		"official.role":      1,
		"status":             1,
		"deleted_at":         1,
	})
	if err := f.c.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	if !e.IsActive() {
		return nil, nil
	}

	return &auth.SessionUser{
		ID:        e.ID.Hex(),
		Name:      e.Personal.FullName,
		Email:     e.Personal.Email,
		LoginCode: e.LoginCode,
		Role:      e.Official.Role,
	}, nil
}
