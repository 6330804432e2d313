package inputval

import (
	"strings"
	"unicode"

	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/officehub/internal/domain/scoring"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func registerRules(v *validator.Validate) {
	str := func(check func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}
	}
	rules := map[string]func(string) bool{
		"emailaddr":      IsValidEmail,
		"objectid":       IsValidObjectID,
		"phone":          IsValidPhone,
		"pan":            IsValidPAN,
		"ifsc":           IsValidIFSC,
		"aadhaar4":       func(s string) bool { return len(s) == 4 && allDigits(s) },
		"accountno":      func(s string) bool { return len(s) >= 9 && len(s) <= 18 && allDigits(s) },
		"role":           models.IsValidRole,
		"candidatestage": models.IsValidCandidateStage,
		"funnelstage":    models.IsValidFunnelStage,
		"source":         models.IsValidCandidateSource,
		"platform":       models.IsValidVacancyPlatform,
		"education":      scoring.IsValidEducation,
		"experienceband": scoring.IsValidExperienceBand,
	}
	for tag, fn := range rules {
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation(tag, str(fn))
	}
}

// IsValidEmail reports whether s is a bare addr-spec (no display name).
// Single-label domains such as "localhost" are accepted.
func IsValidEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 || strings.ContainsAny(s, "<>()[],;:\\\"") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.Contains(local, "@") || !dotAtom(local) {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if !(r == '-' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
				return false
			}
		}
	}
	return true
}

func dotAtom(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}

// IsValidObjectID reports whether s is a 24-char hex Mongo ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// IsValidPhone accepts 10 to 15 digits with an optional leading '+'.
// Spaces and dashes are ignored.
func IsValidPhone(s string) bool {
	s = NormalizePhone(s)
	s = strings.TrimPrefix(s, "+")
	return len(s) >= 10 && len(s) <= 15 && allDigits(s)
}

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// IsValidPAN checks the AAAAA9999A shape (case-insensitive).
func IsValidPAN(s string) bool {
	s = strings.ToUpper(s)
	if len(s) != 10 {
		return false
	}
	return allUpper(s[:5]) && allDigits(s[5:9]) && allUpper(s[9:])
}

// IsValidIFSC checks the AAAA0XXXXXX shape (case-insensitive).
func IsValidIFSC(s string) bool {
	s = strings.ToUpper(s)
	if len(s) != 11 || s[4] != '0' || !allUpper(s[:4]) {
		return false
	}
	for _, r := range s[5:] {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func allUpper(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}
