// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal runs of whitespace. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims and lower-cases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lower-cases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Stage trims and lower-cases a candidate or funnel stage.
func Stage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LoginCode trims and upper-cases a login code, e.g. " rm0007 " -> "RM0007".
func LoginCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Upper trims and upper-cases identifiers such as PAN and IFSC codes.
func Upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Filter trims a list filter value and maps "all" (any case) to "".
func Filter(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
