package normalize

import "testing"

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
		want  string
	}{
		{"email lower", Email, "USER@EXAMPLE.COM", "user@example.com"},
		{"email trim", Email, "  User@Example.Com  ", "user@example.com"},
		{"email blank", Email, "   ", ""},
		{"name trim", Name, "  Asha Verma  ", "Asha Verma"},
		{"name collapse", Name, "Asha   Kumari\tVerma", "Asha Kumari Verma"},
		{"name keeps case", Name, "UPPER NAME", "UPPER NAME"},
		{"status", Status, "  Disabled  ", "disabled"},
		{"role", Role, "RM", "rm"},
		{"stage", Stage, " Interview_Process ", "interview_process"},
		{"login code", LoginCode, " rm0007 ", "RM0007"},
		{"upper pan", Upper, "abcde1234f", "ABCDE1234F"},
		{"query keeps case", QueryParam, "  Asha  ", "Asha"},
		{"filter value", Filter, " rm ", "rm"},
		{"filter all", Filter, "ALL", ""},
		{"filter blank", Filter, "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
