package export

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "setter_prospects_2026-09-01.csv", Filename(now))
}

func TestProspectsHeaderOnlyWhenEmpty(t *testing.T) {
	out := Prospects(nil)
	assert.Equal(t, "ID,Name,Platform,Handle,Status,Priority,Value,Last Contact,Budget Qualified,Authority Qualified,Need Qualified,Timing Qualified\n", out)
}

func TestProspectsQuotesNameAndHandle(t *testing.T) {
	value := 1500.0
	lastContact := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	out := Prospects([]prospectdomain.Prospect{
		{
			ID:          snowflake.ID(42),
			Name:        `O'Brien "Big Deal"`,
			Platform:    "instagram",
			Handle:      "@obrien",
			Status:      prospectdomain.StatusBooked,
			Priority:    prospectdomain.PriorityHigh,
			Value:       &value,
			LastContact: &lastContact,
			QualBudget:  true,
			QualNeed:    true,
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		`42,"O'Brien ""Big Deal""",instagram,"@obrien",booked,high,1500,2026-08-30,Yes,No,Yes,No`,
		lines[1],
	)
}

func TestProspectsMissingValueExportsZero(t *testing.T) {
	out := Prospects([]prospectdomain.Prospect{
		{ID: snowflake.ID(7), Name: "Plain", Platform: "x", Handle: "@p", Status: prospectdomain.StatusNewLead, Priority: prospectdomain.PriorityLow},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `7,"Plain",x,"@p",new_lead,low,0,,No,No,No,No`, lines[1])
}
