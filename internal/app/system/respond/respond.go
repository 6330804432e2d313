// Package respond writes the JSON envelope every API endpoint returns:
//
//	{ "success": true, "message": "...", "data": ... }
//
// List endpoints add "pagination"; validation failures add "errors".
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/officehub/internal/app/system/inputval"
	"github.com/dalemusser/officehub/internal/app/system/paging"
)

// Envelope is the response body shape.
type Envelope struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       any                   `json:"data"`
	Pagination *paging.Meta          `json:"pagination,omitempty"`
	Errors     []inputval.FieldError `json:"errors,omitempty"`
}

// JSON writes env with the given status.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with pagination.
func List(w http.ResponseWriter, data any, meta paging.Meta) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &meta})
}

// Fail writes a failure envelope with status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Invalid writes a 422 envelope carrying field-level validation errors.
func Invalid(w http.ResponseWriter, result inputval.Result) {
	JSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: result.First(),
		Errors:  result.Errors,
	})
}

// DecodeJSON reads a JSON request body into dst, rejecting unknown fields
// and bodies larger than maxBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
