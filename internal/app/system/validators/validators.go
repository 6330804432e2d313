// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/officehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("employees", employeesSchema())
	ensure("candidates", candidatesSchema())
	ensure("vacancies", vacanciesSchema())
	ensure(models.DocumentKindRules.Collection(), documentsSchema())
	ensure(models.DocumentKindFuturePlan.Collection(), documentsSchema())
	ensure("contacts", contactsSchema())
	ensure("rm_assignments", rmAssignmentsSchema())

	ensure("counters", nil)
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enum(values []string) bson.M {
	a := make(bson.A, 0, len(values))
	for _, v := range values {
		a = append(a, v)
	}
	return bson.M{"enum": a}
}

func employeesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"personal", "official", "login_code", "status"},
			"properties": bson.M{
				"personal": bson.M{
					"bsonType": "object",
					"required": bson.A{"full_name", "email"},
					"properties": bson.M{
						"full_name": nonBlank,
						"email":     nonBlank,
					},
				},
				"official": bson.M{
					"bsonType": "object",
					"required": bson.A{"role", "designation"},
					"properties": bson.M{
						"role":        enum(models.Roles),
						"designation": nonBlank,
					},
				},
				"login_code": nonBlank,
				"status":     enum([]string{models.EmployeeActive, models.EmployeeDisabled}),
			},
		},
	}
}

func candidatesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "full_name_ci", "phone", "current_stage", "total_marks"},
			"properties": bson.M{
				"full_name":     nonBlank,
				"full_name_ci":  nonBlank,
				"phone":         nonBlank,
				"current_stage": enum(models.CandidateStages),
				"total_marks":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0, "maximum": 100},
				"vacancy_id":    bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		},
	}
}

func vacanciesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"designation", "designation_ci", "platforms", "status"},
			"properties": bson.M{
				"designation":    nonBlank,
				"designation_ci": nonBlank,
				"platforms":      bson.M{"bsonType": "array", "minItems": 1, "items": enum(models.VacancyPlatforms)},
				"status":         enum([]string{models.VacancyOpen, models.VacancyClosed}),
			},
		},
	}
}

func documentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "title_ci", "file_path", "approval_status", "download_count"},
			"properties": bson.M{
				"title":           nonBlank,
				"title_ci":        nonBlank,
				"file_path":       nonBlank,
				"approval_status": enum([]string{models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected}),
				"download_count":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			},
		},
	}
}

func contactsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "full_name_ci", "phone", "stage"},
			"properties": bson.M{
				"full_name":    nonBlank,
				"full_name_ci": nonBlank,
				"phone":        nonBlank,
				"stage":        enum(models.FunnelStages),
			},
		},
	}
}

func rmAssignmentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"prospect_id", "rm_id", "assigned_at"},
			"properties": bson.M{
				"prospect_id": bson.M{"bsonType": "objectId"},
				"rm_id":       bson.M{"bsonType": "objectId"},
				"assigned_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
