// internal/domain/models/sources.go
package models

// Hiring platforms and lead sources. Vacancies are posted on platforms;
// candidates record where they came from, which may also be a referral or
// a walk-in.
const (
	SourceNaukri   = "naukri"
	SourceLinkedIn = "linkedin"
	SourceIndeed   = "indeed"
	SourceWebsite  = "website"
	SourceReferral = "referral"
	SourceWalkIn   = "walk_in"
	SourceOther    = "other"
)

// VacancyPlatforms are the places a vacancy can be posted.
var VacancyPlatforms = []string{
	SourceNaukri,
	SourceLinkedIn,
	SourceIndeed,
	SourceWebsite,
	SourceOther,
}

// CandidateSources are the ways a candidate can reach the office.
var CandidateSources = []string{
	SourceNaukri,
	SourceLinkedIn,
	SourceIndeed,
	SourceWebsite,
	SourceReferral,
	SourceWalkIn,
	SourceOther,
}

// IsValidVacancyPlatform reports whether p is a known posting platform.
func IsValidVacancyPlatform(p string) bool {
	return contains(VacancyPlatforms, p)
}

// IsValidCandidateSource reports whether s is a known candidate source.
func IsValidCandidateSource(s string) bool {
	return contains(CandidateSources, s)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
