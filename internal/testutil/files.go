package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/spf13/afero"
)

// PDF is a minimal file that sniffs as application/pdf.
var PDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// GIF sniffs as image/gif, which uploads reject.
var GIF = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

// NewFileStore returns an in-memory file store served under /uploads with
// a 1 MiB upload limit.
func NewFileStore() *filestore.Store {
	return filestore.New(afero.NewMemMapFs(), "/uploads", 1<<20)
}

// FileExists reports whether p is stored in fs.
func FileExists(t *testing.T, fs *filestore.Store, p string) bool {
	t.Helper()
	if p == "" {
		return false
	}
	f, err := fs.Open(context.Background(), p)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
