// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
)

// Prefix returns a case-insensitive "starts with" match for q against a
// folded (*_ci) field. Regex metacharacters in q are escaped.
func Prefix(q string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q)), "$options": "i"}
}

// NameOrPhone builds the list-page search clause shared by candidates and
// contacts: a name prefix match, or a phone match when q looks like digits.
// It returns nil when q is blank.
func NameOrPhone(q, nameField, phoneField string) bson.M {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	or := []bson.M{{nameField: Prefix(q)}}
	if digits := DigitsOnly(q); len(digits) >= 3 {
		or = append(or, bson.M{phoneField: bson.M{"$regex": regexp.QuoteMeta(digits)}})
	}
	if len(or) == 1 {
		return or[0]
	}
	return bson.M{"$or": or}
}

// DigitsOnly returns the decimal digits of s, or "" when s contains letters.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')':
		default:
			return ""
		}
	}
	return b.String()
}
