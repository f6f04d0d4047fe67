// Package export renders prospect lists as CSV downloads.
package export

import (
	"fmt"
	"strings"
	"time"

	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
)

var header = []string{
	"ID", "Name", "Platform", "Handle", "Status", "Priority",
	"Value", "Last Contact", "Budget Qualified", "Authority Qualified",
	"Need Qualified", "Timing Qualified",
}

// Filename is the download name for an export generated on the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("setter_prospects_%s.csv", now.Format("2006-01-02"))
}

// Prospects renders the rows as CSV. Only the free-text Name and Handle
// columns are quoted; embedded quotes are doubled.
func Prospects(prospects []prospectdomain.Prospect) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")

	for _, p := range prospects {
		// A missing deal value exports as 0, not as an empty field.
		value := "0"
		if p.Value != nil {
			value = fmt.Sprintf("%g", *p.Value)
		}
		lastContact := ""
		if p.LastContact != nil && !p.LastContact.IsZero() {
			lastContact = p.LastContact.UTC().Format("2006-01-02")
		}
		fields := []string{
			p.ID.String(),
			quote(p.Name),
			p.Platform,
			quote(p.Handle),
			p.Status,
			p.Priority,
			value,
			lastContact,
			yesNo(p.QualBudget),
			yesNo(p.QualAuthority),
			yesNo(p.QualNeed),
			yesNo(p.QualTiming),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
