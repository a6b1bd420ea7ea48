package listutil

import (
	"net/url"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  Window
	}{
		{"empty selects everything", url.Values{}, Window{}},
		{"search is trimmed", url.Values{"search": {"  Ana "}}, Window{Search: "Ana"}},
		{"limit and offset", url.Values{"limit": {"10"}, "offset": {"20"}}, Window{Limit: 10, Offset: 20}},
		{"negative and junk ignored", url.Values{"limit": {"-5"}, "offset": {"x"}}, Window{}},
		{"limit capped", url.Values{"limit": {"10000"}}, Window{Limit: MaxLimit}},
		{"page wins over offset", url.Values{"page": {"3"}, "per_page": {"20"}, "offset": {"7"}}, Window{Limit: 20, Offset: 40}},
		{"page default size", url.Values{"page": {"2"}}, Window{Limit: DefaultPerPage, Offset: DefaultPerPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.query); got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
