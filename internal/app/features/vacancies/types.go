// internal/app/features/vacancies/types.go
package vacancies

import (
	"net/http"
	"strings"

	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
)

type vacancyInput struct {
	Designation string   `json:"designation" validate:"required,max=120" label:"Designation"`
	Platforms   []string `json:"platforms" validate:"min=1,max=5,dive,platform" label:"Platforms"`
	Description string   `json:"description" validate:"max=5000" label:"Description"`
	Status      string   `json:"status" validate:"omitempty,oneof=open closed" label:"Status"`
}

// fromForm reads the multipart fields. Platforms may be repeated or given
// as one comma-separated value.
func fromForm(r *http.Request) vacancyInput {
	in := vacancyInput{
		Designation: r.FormValue("designation"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}
	for _, v := range r.MultipartForm.Value["platforms"] {
		in.Platforms = append(in.Platforms, strings.Split(v, ",")...)
	}
	return in
}

func (in *vacancyInput) clean() {
	in.Designation = strings.TrimSpace(in.Designation)
	in.Description = htmlsanitize.Sanitize(in.Description)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))

	seen := map[string]bool{}
	platforms := make([]string, 0, len(in.Platforms))
	for _, p := range in.Platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	in.Platforms = platforms
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=open closed" label:"Status"`
}
