package report

import (
	"fmt"
	"strings"

	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
)

// Absent is the printable list of members who never attended in a period.
type Absent struct {
	Period       period.Period
	Members      []member.Member
	TotalMembers int
}

// Title names the report by its date range.
func (a Absent) Title() string {
	return fmt.Sprintf("Absent members %s to %s", a.Period.StartDate(), a.Period.EndDate())
}

// Markdown renders the report as a Markdown document with one table row per member.
func (a Absent) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Title())
	fmt.Fprintf(&b, "%d of %d members had no attendance in this period.\n\n", len(a.Members), a.TotalMembers)
	if len(a.Members) == 0 {
		return b.String()
	}

	b.WriteString("| # | Name | Phone | Address |\n")
	b.WriteString("|---|------|-------|---------|\n")
	for i, m := range a.Members {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, cell(m.FullName()), cell(m.Telefono), cell(m.Direccion))
	}
	return b.String()
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
