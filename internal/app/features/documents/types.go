// internal/app/features/documents/types.go
package documents

import (
	"net/http"
	"strings"

	"github.com/dalemusser/officehub/internal/app/system/htmlsanitize"
)

type uploadInput struct {
	Title       string `json:"title" validate:"required,max=200" label:"Title"`
	Description string `json:"description" validate:"max=2000" label:"Description"`
}

func fromForm(r *http.Request) uploadInput {
	return uploadInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: htmlsanitize.PlainText(r.FormValue("description")),
	}
}

type approvalInput struct {
	Status  string `json:"status" validate:"required,oneof=pending approved rejected" label:"Status"`
	Remarks string `json:"remarks" validate:"max=1000" label:"Remarks"`
}
