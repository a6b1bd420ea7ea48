package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
		deny []string
	}{
		{
			name: "heading",
			src:  "# Absent members",
			want: []string{"<h1>Absent members</h1>"},
		},
		{
			name: "table",
			src:  "| # | Name |\n|---|------|\n| 1 | Ana |\n",
			want: []string{"<table>", "<th>Name</th>", "<td>Ana</td>"},
		},
		{
			name: "hard wraps",
			src:  "line one\nline two",
			want: []string{"line one<br>"},
		},
		{
			name: "raw html is not passed through",
			src:  "<script>alert(1)</script>",
			deny: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.src)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML() = %q, want it to contain %q", got, w)
				}
			}
			for _, d := range tt.deny {
				if strings.Contains(got, d) {
					t.Errorf("ToHTML() = %q, must not contain %q", got, d)
				}
			}
		})
	}
}

func TestDocumentEscapesTitle(t *testing.T) {
	doc := Document("A & B", "<p>x</p>")
	if !strings.Contains(doc, "<title>A &amp; B</title>") {
		t.Errorf("title not escaped: %s", doc)
	}
	if !strings.Contains(doc, "<p>x</p>") {
		t.Errorf("body missing: %s", doc)
	}
}
