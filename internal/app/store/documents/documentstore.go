// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/search"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrBadApproval   = errors.New(`approval status must be "pending"|"approved"|"rejected"`)
	errTitleRequired = errors.New("title is required")
	errFileRequired  = errors.New("file is required")
)

// Store works on one document collection, selected by kind.
type Store struct {
	c    *mongo.Collection
	kind models.DocumentKind
}

func New(db *mongo.Database, kind models.DocumentKind) *Store {
	return &Store{c: db.Collection(kind.Collection()), kind: kind}
}

// Kind returns the document kind this store serves.
func (s *Store) Kind() models.DocumentKind { return s.kind }

// Create inserts document metadata for an already stored file. Approval
// always starts as pending and the download count at zero.
func (s *Store) Create(ctx context.Context, d models.Document) (models.Document, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return models.Document{}, errTitleRequired
	}
	if d.FilePath == "" {
		return models.Document{}, errFileRequired
	}

	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.TitleCI = text.Fold(d.Title)
	d.ApprovalStatus = models.ApprovalPending
	d.ApprovalRemarks = ""
	d.ApprovedByID = nil
	d.ApprovedByName = ""
	d.ApprovedAt = nil
	d.DownloadCount = 0
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, fmt.Errorf("insert %s document: %w", s.kind, err)
	}
	return d, nil
}

// Approval is a decision on a document.
type Approval struct {
	Status  string
	Remarks string
	ByID    *primitive.ObjectID
	ByName  string
}

// SetApproval records an approval decision. Returning to pending clears
// the approver fields.
func (s *Store) SetApproval(ctx context.Context, id primitive.ObjectID, a Approval) (models.Document, error) {
	if !models.IsValidApprovalStatus(a.Status) {
		return models.Document{}, ErrBadApproval
	}
	now := time.Now().UTC()
	update := bson.M{}
	if a.Status == models.ApprovalPending {
		update["$set"] = bson.M{
			"approval_status":  a.Status,
			"approval_remarks": a.Remarks,
			"updated_at":       now,
		}
		update["$unset"] = bson.M{"approved_by_id": "", "approved_by_name": "", "approved_at": ""}
	} else {
		update["$set"] = bson.M{
			"approval_status":  a.Status,
			"approval_remarks": a.Remarks,
			"approved_by_id":   a.ByID,
			"approved_by_name": a.ByName,
			"approved_at":      now,
			"updated_at":       now,
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Document
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return models.Document{}, notFound(err)
	}
	return out, nil
}

// IncrementDownload bumps the download counter and returns the document
// with the new count.
func (s *Store) IncrementDownload(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Document
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"download_count": int64(1)}}, opts).Decode(&out)
	if err != nil {
		return models.Document{}, notFound(err)
	}
	return out, nil
}

// GetByID loads a document by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var d models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Document{}, notFound(err)
	}
	return d, nil
}

// Delete removes a document and returns it so the caller can remove the file.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var d models.Document
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Document{}, notFound(err)
	}
	return d, nil
}

// ListFilter narrows document lists.
type ListFilter struct {
	Status string
	Query  string
}

// Filter converts f into a Mongo filter.
func (f ListFilter) Filter() bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["approval_status"] = f.Status
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		filter["title_ci"] = search.Prefix(q)
	}
	return filter
}

// Find returns documents matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Document, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of documents matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
