// Package analytics computes pipeline metrics from in-memory prospect
// snapshots. Everything here is pure so the numbers are reproducible
// for any slice of rows the caller is scoped to.
package analytics

import (
	"math"
	"time"

	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
)

// Breakdown is a per-bucket tally used for platform and creator splits.
type Breakdown struct {
	Total  int `json:"total"`
	Booked int `json:"booked"`
}

// Summary is the full analytics payload for one scope.
type Summary struct {
	TotalProspects     int                  `json:"total_prospects"`
	ConversionRate     float64              `json:"conversion_rate"`
	RealizedCommission float64              `json:"realized_commission"`
	PipelineCommission float64              `json:"pipeline_commission"`
	NeedingFollowUp    int                  `json:"needing_follow_up"`
	FunnelDistribution map[string]int       `json:"funnel_distribution"`
	PlatformBreakdown  map[string]Breakdown `json:"platform_breakdown"`
	CreatorBreakdown   map[string]Breakdown `json:"creator_breakdown"`
}

// round1 keeps one decimal place, matching the dashboard display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ConversionRate is the share of prospects that reached booked or
// closed, as a percentage with one decimal. Empty input yields 0.
func ConversionRate(prospects []prospectdomain.Prospect) float64 {
	if len(prospects) == 0 {
		return 0
	}
	won := 0
	for _, p := range prospects {
		if p.Status == prospectdomain.StatusBooked || p.Status == prospectdomain.StatusClosed {
			won++
		}
	}
	return round1(float64(won) / float64(len(prospects)) * 100)
}

// RealizedCommission sums value*rate over closed prospects.
func RealizedCommission(prospects []prospectdomain.Prospect) float64 {
	var sum float64
	for _, p := range prospects {
		if p.Status != prospectdomain.StatusClosed || p.Value == nil {
			continue
		}
		sum += *p.Value * p.CommissionRate / 100
	}
	return round1(sum)
}

// PipelineCommission sums potential commission over prospects still in
// play, everything before booked.
func PipelineCommission(prospects []prospectdomain.Prospect) float64 {
	var sum float64
	for _, p := range prospects {
		if p.Status == prospectdomain.StatusBooked || p.Status == prospectdomain.StatusClosed {
			continue
		}
		if p.Value == nil {
			continue
		}
		sum += *p.Value * p.CommissionRate / 100
	}
	return round1(sum)
}

// FunnelDistribution counts prospects per kanban status. Every status
// appears in the map even when its count is zero.
func FunnelDistribution(prospects []prospectdomain.Prospect) map[string]int {
	funnel := make(map[string]int, len(prospectdomain.Statuses))
	for _, status := range prospectdomain.Statuses {
		funnel[status] = 0
	}
	for _, p := range prospects {
		funnel[p.Status]++
	}
	return funnel
}

// PlatformBreakdown tallies totals and bookings per platform.
func PlatformBreakdown(prospects []prospectdomain.Prospect) map[string]Breakdown {
	out := make(map[string]Breakdown)
	for _, p := range prospects {
		b := out[p.Platform]
		b.Total++
		if p.Status == prospectdomain.StatusBooked || p.Status == prospectdomain.StatusClosed {
			b.Booked++
		}
		out[p.Platform] = b
	}
	return out
}

// CreatorBreakdown tallies totals and bookings per creator name, used
// on agency dashboards. Rows without a creator fall under "Unknown".
func CreatorBreakdown(prospects []prospectdomain.Prospect) map[string]Breakdown {
	out := make(map[string]Breakdown)
	for _, p := range prospects {
		name := p.CreatorName
		if name == "" {
			name = "Unknown"
		}
		b := out[name]
		b.Total++
		if p.Status == prospectdomain.StatusBooked || p.Status == prospectdomain.StatusClosed {
			b.Booked++
		}
		out[name] = b
	}
	return out
}

// Summarize builds the full analytics payload at the given time.
func Summarize(prospects []prospectdomain.Prospect, now time.Time) Summary {
	needing := 0
	for _, p := range prospects {
		if prospectdomain.FollowUpDue(p, now) {
			needing++
		}
	}
	return Summary{
		TotalProspects:     len(prospects),
		ConversionRate:     ConversionRate(prospects),
		RealizedCommission: RealizedCommission(prospects),
		PipelineCommission: PipelineCommission(prospects),
		NeedingFollowUp:    needing,
		FunnelDistribution: FunnelDistribution(prospects),
		PlatformBreakdown:  PlatformBreakdown(prospects),
		CreatorBreakdown:   CreatorBreakdown(prospects),
	}
}

// GoalProgress is the share of a goal achieved, as a percentage with
// one decimal, capped at 100. A zero goal reports 0.
func GoalProgress(achieved, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	progress := achieved / goal * 100
	if progress > 100 {
		progress = 100
	}
	return round1(progress)
}
