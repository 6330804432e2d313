// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/officehub/internal/domain/models"
)

// Role groups used by route gates.
var (
	EmployeeManagers  = []string{models.RoleAdmin, models.RoleHR}
	Recruiters        = []string{models.RoleAdmin, models.RoleHR, models.RoleManager}
	VacancyManagers   = []string{models.RoleAdmin, models.RoleHR}
	DocumentUploaders = []string{models.RoleAdmin, models.RoleHR, models.RoleManager}
	ContactUsers      = []string{models.RoleAdmin, models.RoleManager, models.RoleRM, models.RoleTelecaller}
	ContactRemovers   = []string{models.RoleAdmin, models.RoleManager}
	Assigners         = []string{models.RoleAdmin, models.RoleManager}
)

// HasAnyRole reports whether the current request's user has any of the given roles.
// Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// HasRole is a convenience wrapper for a single role.
func HasRole(r *http.Request, role string) bool {
	return HasAnyRole(r, role)
}
