// Package filestore keeps uploaded files (resumes, vacancy documents, rules
// and future-plan documents) on an afero filesystem and serves them back
// read-only.
//
// Stored paths are slash-separated and relative to the store root:
//
//	resumes/2026/03/1f2e3d4c-asha_resume.pdf
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"
)

var (
	ErrEmpty           = errors.New("filestore: file is empty")
	ErrTooLarge        = errors.New("filestore: file exceeds upload limit")
	ErrUnsupportedType = errors.New("filestore: unsupported file type")
)

// sniffLen is how many leading bytes filetype needs to classify a file.
const sniffLen = 261

var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/png":  true,
	"image/jpeg": true,
}

// textTypes are accepted by extension when the content has no magic number.
var textTypes = map[string]string{
	".txt": "text/plain",
	".csv": "text/csv",
}

// Object describes one stored file.
type Object struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
	URL         string
}

// Store writes and reads files under its filesystem root.
type Store struct {
	fs        afero.Fs
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

// New wraps fs. urlPrefix is the public prefix files are served under
// (e.g. "/uploads"); maxBytes <= 0 disables the size limit.
func New(fs afero.Fs, urlPrefix string, maxBytes int64) *Store {
	return &Store{
		fs:        fs,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// NewOS creates root if needed and returns a Store confined to it.
func NewOS(root, urlPrefix string, maxMB int64) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", root, err)
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), root)
	return New(fs, urlPrefix, maxMB*1024*1024), nil
}

// Put stores r under dir and returns the stored object. The content type
// is sniffed from the leading bytes; only office documents, PDFs, PNG/JPEG
// images and plain text/CSV are accepted. The file is written to a temp
// name and renamed into place once complete.
func (s *Store) Put(ctx context.Context, dir, filename string, r io.Reader) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Object{}, fmt.Errorf("filestore: read: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return Object{}, ErrEmpty
	}

	name := SanitizeName(filename)
	contentType, err := DetectType(head, name)
	if err != nil {
		return Object{}, err
	}

	now := s.now().UTC()
	dirPath := path.Join(strings.Trim(dir, "/"), now.Format("2006"), now.Format("01"))
	if err := s.fs.MkdirAll(abs(dirPath), 0o755); err != nil {
		return Object{}, fmt.Errorf("filestore: mkdir: %w", err)
	}
	target := path.Join(dirPath, uuid.NewString()[:8]+"-"+name)
	tmp := abs(target) + ".tmp"

	f, err := s.fs.Create(tmp)
	if err != nil {
		return Object{}, fmt.Errorf("filestore: create: %w", err)
	}

	src := io.MultiReader(bytes.NewReader(head), r)
	if s.maxBytes > 0 {
		src = io.LimitReader(src, s.maxBytes+1)
	}
	written, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return Object{}, fmt.Errorf("filestore: write: %w", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = s.fs.Remove(tmp)
		return Object{}, ErrTooLarge
	}
	if err := s.fs.Rename(tmp, abs(target)); err != nil {
		_ = s.fs.Remove(tmp)
		return Object{}, fmt.Errorf("filestore: rename: %w", err)
	}

	return Object{
		Path:        target,
		Name:        name,
		Size:        written,
		ContentType: contentType,
		URL:         s.URL(target),
	}, nil
}

// Open returns the stored file for reading.
func (s *Store) Open(ctx context.Context, p string) (afero.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fs.Open(abs(p))
}

// Delete removes a stored file. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == "" {
		return nil
	}
	if err := s.fs.Remove(abs(p)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: delete: %w", err)
	}
	return nil
}

// Check verifies the store is writable by creating and removing a scratch file.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := afero.TempFile(s.fs, "/", ".writecheck-")
	if err != nil {
		return fmt.Errorf("filestore: not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	if err := s.fs.Remove(name); err != nil {
		return fmt.Errorf("filestore: remove scratch file: %w", err)
	}
	return nil
}

// URL returns the public URL of a stored path.
func (s *Store) URL(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimSuffix(s.urlPrefix, "/") + "/" + cleanRel(p)
}

// MaxBytes is the largest file Put accepts; 0 means unlimited.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Prefix is the public URL prefix files are served under.
func (s *Store) Prefix() string { return s.urlPrefix }

// Handler serves stored files read-only. Directory paths are not listed.
func (s *Store) Handler() http.Handler {
	files := http.FileServer(afero.NewHttpFs(s.fs))
	return http.StripPrefix(s.urlPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	}))
}

// DetectType classifies head. Files without a recognised magic number are
// accepted only when their extension is .txt or .csv.
func DetectType(head []byte, name string) (string, error) {
	kind, err := filetype.Match(head)
	if err == nil && kind != filetype.Unknown {
		if allowedTypes[kind.MIME.Value] {
			return kind.MIME.Value, nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, kind.MIME.Value)
	}
	if ct, ok := textTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct, nil
	}
	return "", ErrUnsupportedType
}

// SanitizeName reduces an uploaded filename to a safe base name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "file"
	}
	if len(name) > 100 {
		ext := path.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}

func cleanRel(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func abs(p string) string {
	return "/" + cleanRel(p)
}
