// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/officehub/internal/app/system/respond"
)

// NotFound answers unmatched routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Fail(w, http.StatusNotFound, "Resource not found.")
}

// MethodNotAllowed answers a known route called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
