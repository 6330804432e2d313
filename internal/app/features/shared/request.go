// internal/app/features/shared/request.go
//
// Package shared holds the request plumbing every API feature repeats:
// path ids, JSON bodies, multipart uploads, and the acting employee.
package shared

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/officehub/internal/app/features/errors"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MaxJSONBody caps JSON request bodies.
const MaxJSONBody = 1 << 20

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// MultipartOverhead is the allowance for form fields and part headers on
// top of the largest accepted file.
const MultipartOverhead = 1 << 20

// IDParam parses the chi URL param name as an ObjectID. On failure it
// writes a 400 and returns false.
func IDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid id.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// DecodeJSON reads the request body into dst. On failure it writes a 400
// (413 for oversized bodies) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := respond.DecodeJSON(w, r, dst, MaxJSONBody)
	if err == nil {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		respond.Fail(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
		return false
	}
	respond.Fail(w, http.StatusBadRequest, "Request body is not valid JSON: "+err.Error())
	return false
}

// Actor returns the signed-in employee's id and name for created_by and
// changed_by fields. The id is nil for anonymous requests.
func Actor(r *http.Request) (*primitive.ObjectID, string) {
	_, name, id, ok := authz.UserCtx(r)
	if !ok {
		return nil, ""
	}
	return &id, name
}

// OptionalID parses a validated hex id; "" yields nil.
func OptionalID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &oid
}

// IsMultipart reports whether r carries a multipart/form-data body.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// ParseMultipart parses a multipart body of at most maxFile bytes of file
// plus MultipartOverhead; maxFile <= 0 leaves the body unbounded. Oversized
// bodies get a 413 before anything is spooled to disk, other failures a 400.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxFile int64) bool {
	var body *cappedBody
	if maxFile > 0 {
		limit := maxFile + MultipartOverhead
		if r.ContentLength > limit {
			respond.Fail(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		body = &cappedBody{ReadCloser: http.MaxBytesReader(w, r.Body, limit)}
		r.Body = body
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || (body != nil && body.hitLimit) {
			respond.Fail(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		respond.Fail(w, http.StatusBadRequest, "Request must be multipart/form-data.")
		return false
	}
	return true
}

// cappedBody remembers that its MaxBytesReader refused to read further,
// whatever the multipart reader makes of the error.
type cappedBody struct {
	io.ReadCloser
	hitLimit bool
}

func (b *cappedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		b.hitLimit = true
	}
	return n, err
}

// DecodeFormJSON reads the JSON document carried in the multipart field
// into dst, with the same strictness as DecodeJSON. On failure it writes a
// 400 and returns false.
func DecodeFormJSON(w http.ResponseWriter, r *http.Request, field string, dst any) bool {
	raw := r.FormValue(field)
	if strings.TrimSpace(raw) == "" {
		respond.Fail(w, http.StatusBadRequest, "Form field \""+field+"\" must carry the record as JSON.")
		return false
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Form field \""+field+"\" is not valid JSON: "+err.Error())
		return false
	}
	return true
}

// FormFile returns the uploaded file in field. A missing file yields a nil
// file and header with no error.
func FormFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	return f, fh, err
}

// UploadStatus maps a filestore error to a status and message for the
// client. ok is false for errors that are the server's fault.
func UploadStatus(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, filestore.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "File exceeds the upload size limit.", true
	case errors.Is(err, filestore.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "Unsupported file type. Upload a PDF, Word, Excel, PNG, JPEG, text or CSV file.", true
	case errors.Is(err, filestore.ErrEmpty):
		return http.StatusUnprocessableEntity, "Uploaded file is empty.", true
	}
	return http.StatusInternalServerError, "", false
}

// UploadFailed writes the response for a failed filestore.Put: a client
// status for rejected files, a logged 500 otherwise.
func UploadFailed(w http.ResponseWriter, r *http.Request, errLog *apierrors.ErrorLogger, err error) {
	status, msg, ok := UploadStatus(err)
	if !ok {
		errLog.LogServerError(w, r, "store upload", err, "Could not store the uploaded file.")
		return
	}
	errLog.LogStatus(w, r, status, "upload rejected", err, msg)
}

// Discard removes a stored file that no record points at (a failed insert
// or a replaced upload). Failures are logged and otherwise ignored.
func Discard(ctx context.Context, files *filestore.Store, log *zap.Logger, path string) {
	if path == "" {
		return
	}
	if err := files.Delete(ctx, path); err != nil {
		log.Warn("remove stored file", zap.String("path", path), zap.Error(err))
	}
}
