package analytics

import (
	"testing"
	"time"

	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/stretchr/testify/assert"
)

func fv(v float64) *float64 { return &v }

func TestConversionRateEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(nil))
	assert.Equal(t, 0.0, ConversionRate([]prospectdomain.Prospect{}))
}

func TestConversionRateOneDecimal(t *testing.T) {
	prospects := []prospectdomain.Prospect{
		{Status: prospectdomain.StatusBooked},
		{Status: prospectdomain.StatusClosed},
		{Status: prospectdomain.StatusNewLead},
	}
	// 2 of 3 = 66.666..., rounded to one decimal.
	assert.Equal(t, 66.7, ConversionRate(prospects))
}

func TestRealizedCommissionOnlyClosed(t *testing.T) {
	prospects := []prospectdomain.Prospect{
		{Status: prospectdomain.StatusClosed, Value: fv(1000), CommissionRate: 10},
		{Status: prospectdomain.StatusClosed, Value: fv(500), CommissionRate: 20},
		{Status: prospectdomain.StatusBooked, Value: fv(9999), CommissionRate: 50},
		{Status: prospectdomain.StatusClosed, Value: nil, CommissionRate: 10},
	}
	assert.Equal(t, 200.0, RealizedCommission(prospects))
}

func TestPipelineCommissionExcludesWon(t *testing.T) {
	prospects := []prospectdomain.Prospect{
		{Status: prospectdomain.StatusNewLead, Value: fv(1000), CommissionRate: 10},
		{Status: prospectdomain.StatusConversation, Value: fv(2000), CommissionRate: 10},
		{Status: prospectdomain.StatusBooked, Value: fv(5000), CommissionRate: 10},
		{Status: prospectdomain.StatusClosed, Value: fv(5000), CommissionRate: 10},
	}
	assert.Equal(t, 300.0, PipelineCommission(prospects))
}

func TestFunnelDistributionIncludesEmptyColumns(t *testing.T) {
	funnel := FunnelDistribution([]prospectdomain.Prospect{
		{Status: prospectdomain.StatusNewLead},
		{Status: prospectdomain.StatusNewLead},
		{Status: prospectdomain.StatusBooked},
	})
	assert.Equal(t, 2, funnel[prospectdomain.StatusNewLead])
	assert.Equal(t, 1, funnel[prospectdomain.StatusBooked])
	assert.Equal(t, 0, funnel[prospectdomain.StatusClosed])
	assert.Len(t, funnel, len(prospectdomain.Statuses))
}

func TestPlatformBreakdown(t *testing.T) {
	breakdown := PlatformBreakdown([]prospectdomain.Prospect{
		{Platform: "instagram", Status: prospectdomain.StatusBooked},
		{Platform: "instagram", Status: prospectdomain.StatusNewLead},
		{Platform: "linkedin", Status: prospectdomain.StatusClosed},
	})
	assert.Equal(t, Breakdown{Total: 2, Booked: 1}, breakdown["instagram"])
	assert.Equal(t, Breakdown{Total: 1, Booked: 1}, breakdown["linkedin"])
}

func TestCreatorBreakdownUnknownBucket(t *testing.T) {
	breakdown := CreatorBreakdown([]prospectdomain.Prospect{
		{CreatorName: "Ana", Status: prospectdomain.StatusBooked},
		{CreatorName: "", Status: prospectdomain.StatusNewLead},
	})
	assert.Equal(t, Breakdown{Total: 1, Booked: 1}, breakdown["Ana"])
	assert.Equal(t, Breakdown{Total: 1, Booked: 0}, breakdown["Unknown"])
}

func TestSummarizeCountsFollowUps(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-50 * time.Hour)
	summary := Summarize([]prospectdomain.Prospect{
		{Status: prospectdomain.StatusContacted, LastContact: &old},
		{Status: prospectdomain.StatusContacted},
	}, now)
	assert.Equal(t, 2, summary.TotalProspects)
	assert.Equal(t, 1, summary.NeedingFollowUp)
}

func TestGoalProgress(t *testing.T) {
	assert.Equal(t, 50.0, GoalProgress(2500, 5000))
	assert.Equal(t, 100.0, GoalProgress(9000, 5000))
	assert.Equal(t, 0.0, GoalProgress(100, 0))
	assert.Equal(t, 33.3, GoalProgress(1, 3))
}
