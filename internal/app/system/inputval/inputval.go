// Package inputval validates request payloads with struct tags and turns
// validator failures into user-facing, field-level messages.
//
// Fields name themselves by their json tag and describe themselves with a
// `label` tag:
//
//	type createContact struct {
//		FullName string `json:"full_name" validate:"required,max=120" label:"Full name"`
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects the failures from one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any field failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a failure that was detected outside the struct tags.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		registerRules(v)
		validate = v
	})
	return validate
}

// Validate runs the struct tags on s.
func Validate(s any) Result {
	var out Result
	err := instance().Struct(s)
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Add("", "Invalid input.")
		return out
	}
	root := reflect.TypeOf(s)
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe, labelFor(root, fe)),
		})
	}
	return out
}

// fieldPath drops the root struct name from a namespace such as
// "employeeInput.personal.email".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labelFor walks the Go field path of fe from root and returns the label
// tag of the failing field, falling back to its json name.
func labelFor(root reflect.Type, fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	t := root
	var label string
	for _, p := range parts[1:] {
		for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		sf, ok := t.FieldByName(p)
		if !ok {
			break
		}
		label = sf.Tag.Get("label")
		t = sf.Type
	}
	if label == "" {
		label = fe.Field()
	}
	return label
}

func message(fe validator.FieldError, label string) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required", "required_without", "required_if":
		return label + " is required."
	case "emailaddr", "email":
		return "A valid email address is required."
	case "max":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must have at most %s items.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must have at least %s item(s).", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return label + " must be a valid id."
	case "phone":
		return label + " must be a valid phone number (10 to 15 digits)."
	case "pan":
		return label + " must be a valid PAN (e.g. ABCDE1234F)."
	case "ifsc":
		return label + " must be a valid IFSC code (e.g. HDFC0001234)."
	case "aadhaar4":
		return label + " must be the last 4 digits."
	case "accountno":
		return label + " must be 9 to 18 digits."
	}
	return label + " is invalid."
}
