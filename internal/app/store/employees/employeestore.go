// internal/app/store/employees/employeestore.go
package employeestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	counterstore "github.com/dalemusser/officehub/internal/app/store/counters"
	"github.com/dalemusser/officehub/internal/app/system/authutil"
	"github.com/dalemusser/officehub/internal/app/system/normalize"
	"github.com/dalemusser/officehub/internal/app/system/search"
	"github.com/dalemusser/officehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("an employee with this email already exists")
	ErrDuplicateCode  = errors.New("an employee with this login code already exists")
	errBadRole        = errors.New("role must be one of admin|hr|manager|rm|telecaller|operations")
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
	errNameRequired   = errors.New("full_name is required")
	errEmailRequired  = errors.New("email is required")
)

type Store struct {
	c        *mongo.Collection
	counters *counterstore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("employees"),
		counters: counterstore.New(db),
	}
}

// live matches employees that have not been soft-deleted.
func live(filter bson.M) bson.M {
	filter["deleted_at"] = bson.M{"$exists": false}
	return filter
}

// Create inserts a new employee. Designation is derived from the role, the
// login code is generated from the role prefix and the next value of that
// prefix's counter, and password (when non-empty) is stored as a bcrypt hash.
func (s *Store) Create(ctx context.Context, e models.Employee, password string) (models.Employee, error) {
	normalizePersonal(&e.Personal)
	e.Official.Role = normalize.Role(e.Official.Role)
	if e.Personal.FullName == "" {
		return models.Employee{}, errNameRequired
	}
	if e.Personal.Email == "" {
		return models.Employee{}, errEmailRequired
	}
	if !models.IsValidRole(e.Official.Role) {
		return models.Employee{}, errBadRole
	}
	e.Official.Designation = models.DesignationForRole(e.Official.Role)
	e.Bank.IFSC = normalize.Upper(e.Bank.IFSC)

	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	if e.Status != models.EmployeeActive && e.Status != models.EmployeeDisabled {
		return models.Employee{}, errBadStatus
	}

	if password != "" {
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return models.Employee{}, fmt.Errorf("hash password: %w", err)
		}
		e.PasswordHash = hash
	}

	prefix := models.LoginCodePrefix(e.Official.Role)
	seq, err := s.counters.Next(ctx, prefix)
	if err != nil {
		return models.Employee{}, fmt.Errorf("allocate login code: %w", err)
	}
	e.LoginCode = counterstore.FormatLoginCode(prefix, seq)

	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.DeletedAt = nil

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Employee{}, dupErr(err)
	}
	return e, nil
}

// Update replaces the personal, official and bank sub-records. The login
// code, password and status are not touched; a role change re-derives the
// designation but keeps the existing login code.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Employee) (models.Employee, error) {
	normalizePersonal(&mut.Personal)
	mut.Official.Role = normalize.Role(mut.Official.Role)
	if mut.Personal.FullName == "" {
		return models.Employee{}, errNameRequired
	}
	if mut.Personal.Email == "" {
		return models.Employee{}, errEmailRequired
	}
	if !models.IsValidRole(mut.Official.Role) {
		return models.Employee{}, errBadRole
	}
	mut.Official.Designation = models.DesignationForRole(mut.Official.Role)
	mut.Bank.IFSC = normalize.Upper(mut.Bank.IFSC)

	update := bson.M{"$set": bson.M{
		"personal":   mut.Personal,
		"official":   mut.Official,
		"bank":       mut.Bank,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Employee
	if err := s.c.FindOneAndUpdate(ctx, live(bson.M{"_id": id}), update, opts).Decode(&out); err != nil {
		return models.Employee{}, dupErr(notFound(err))
	}
	return out, nil
}

// SetStatus enables or disables an employee.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if status != models.EmployeeActive && status != models.EmployeeDisabled {
		return errBadStatus
	}
	return s.setFields(ctx, id, bson.M{"status": status})
}

// SetPassword replaces the employee's password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.setFields(ctx, id, bson.M{"password_hash": hash})
}

// SoftDelete marks the employee deleted and disabled. The record and its
// login code stay reserved.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	return s.setFields(ctx, id, bson.M{"deleted_at": now, "status": models.EmployeeDisabled})
}

func (s *Store) setFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, live(bson.M{"_id": id}), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads a live employee by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, live(bson.M{"_id": id})).Decode(&e); err != nil {
		return models.Employee{}, notFound(err)
	}
	return e, nil
}

// GetByLoginCode loads a live employee by login code (case-insensitive).
func (s *Store) GetByLoginCode(ctx context.Context, code string) (models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, live(bson.M{"login_code": normalize.LoginCode(code)})).Decode(&e); err != nil {
		return models.Employee{}, notFound(err)
	}
	return e, nil
}

// GetActiveRM loads an active employee with the rm role.
func (s *Store) GetActiveRM(ctx context.Context, id primitive.ObjectID) (models.Employee, error) {
	var e models.Employee
	filter := live(bson.M{"_id": id, "official.role": models.RoleRM, "status": models.EmployeeActive})
	if err := s.c.FindOne(ctx, filter).Decode(&e); err != nil {
		return models.Employee{}, notFound(err)
	}
	return e, nil
}

// ListFilter narrows employee lists. Soft-deleted employees never match.
type ListFilter struct {
	Role   string
	Status string
	Query  string
}

// Filter converts f into a Mongo filter.
func (f ListFilter) Filter() bson.M {
	filter := live(bson.M{})
	if f.Role != "" {
		filter["official.role"] = f.Role
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		filter["$or"] = []bson.M{
			{"personal.full_name_ci": search.Prefix(q)},
			{"personal.email_ci": search.Prefix(q)},
			{"login_code": normalize.LoginCode(q)},
		}
	}
	return filter
}

// Find returns employees matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Employee, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Employee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of employees matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// CountActiveByRole returns the number of active employees per role.
func (s *Store) CountActiveByRole(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: live(bson.M{"status": models.EmployeeActive})}},
		{{Key: "$group", Value: bson.M{"_id": "$official.role", "n": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64, len(models.Roles))
	for _, r := range models.Roles {
		out[r] = 0
	}
	for cur.Next(ctx) {
		var row struct {
			Role string `bson:"_id"`
			N    int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Role] = row.N
	}
	return out, cur.Err()
}

// EnsureAdmin creates an active admin with the given email and password when
// no live admin exists. It reports whether an employee was created.
func (s *Store) EnsureAdmin(ctx context.Context, name, email, password string) (models.Employee, bool, error) {
	n, err := s.c.CountDocuments(ctx, live(bson.M{"official.role": models.RoleAdmin}))
	if err != nil {
		return models.Employee{}, false, err
	}
	if n > 0 {
		return models.Employee{}, false, nil
	}
	if name == "" {
		name = "Administrator"
	}
	e, err := s.Create(ctx, models.Employee{
		Personal: models.PersonalInfo{FullName: name, Email: email},
		Official: models.OfficialInfo{Role: models.RoleAdmin},
	}, password)
	if err != nil {
		return models.Employee{}, false, err
	}
	return e, true, nil
}

func normalizePersonal(p *models.PersonalInfo) {
	p.FullName = normalize.Name(p.FullName)
	p.FullNameCI = text.Fold(p.FullName)
	p.Email = normalize.Email(p.Email)
	p.EmailCI = text.Fold(p.Email)
	p.PANNumber = normalize.Upper(p.PANNumber)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func dupErr(err error) error {
	if !wafflemongo.IsDup(err) {
		return err
	}
	if strings.Contains(err.Error(), "login_code") {
		return ErrDuplicateCode
	}
	return ErrDuplicateEmail
}
