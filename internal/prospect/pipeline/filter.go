// Package pipeline filters and sorts prospect lists for the kanban and
// list views. All functions are pure; inputs are never mutated.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/prospect/domain"
)

// Sort orders accepted by Apply.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortHighest  = "highest"
	SortLowest   = "lowest"
	SortPriority = "priority"
)

// Query is the full filter/sort request. Zero values mean "no filter".
// Creator is the creating user's id, matched exactly.
type Query struct {
	Search   string
	Platform string
	Priority string
	Creator  string
	MinValue *float64
	MaxValue *float64
	SortBy   string
}

var priorityRank = map[string]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// Apply returns a new slice holding the prospects that match the query,
// in the requested order.
func Apply(prospects []domain.Prospect, q Query) []domain.Prospect {
	out := make([]domain.Prospect, 0, len(prospects))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range prospects {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Handle), search) {
			continue
		}
		if q.Platform != "" && !strings.EqualFold(p.Platform, q.Platform) {
			continue
		}
		if q.Priority != "" && p.Priority != q.Priority {
			continue
		}
		if q.Creator != "" && p.UserID.String() != q.Creator {
			continue
		}
		value := 0.0
		if p.Value != nil {
			value = *p.Value
		}
		if q.MinValue != nil && value < *q.MinValue {
			continue
		}
		if q.MaxValue != nil && value > *q.MaxValue {
			continue
		}
		out = append(out, p)
	}

	sortProspects(out, q.SortBy)
	return out
}

func sortProspects(prospects []domain.Prospect, sortBy string) {
	value := func(p domain.Prospect) float64 {
		if p.Value == nil {
			return 0
		}
		return *p.Value
	}

	switch sortBy {
	case SortOldest:
		sort.SliceStable(prospects, func(i, j int) bool {
			return prospects[i].CreatedAt.Before(prospects[j].CreatedAt)
		})
	case SortHighest:
		sort.SliceStable(prospects, func(i, j int) bool {
			return value(prospects[i]) > value(prospects[j])
		})
	case SortLowest:
		sort.SliceStable(prospects, func(i, j int) bool {
			return value(prospects[i]) < value(prospects[j])
		})
	case SortPriority:
		sort.SliceStable(prospects, func(i, j int) bool {
			ri, ok := priorityRank[prospects[i].Priority]
			if !ok {
				ri = len(priorityRank)
			}
			rj, ok := priorityRank[prospects[j].Priority]
			if !ok {
				rj = len(priorityRank)
			}
			return ri < rj
		})
	default: // SortNewest
		sort.SliceStable(prospects, func(i, j int) bool {
			return prospects[i].CreatedAt.After(prospects[j].CreatedAt)
		})
	}
}

// OwnedBy returns the subset of prospects created by the given user.
// Setters see only their own rows in aggregate views.
func OwnedBy(prospects []domain.Prospect, userID snowflake.ID) []domain.Prospect {
	out := make([]domain.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// NeedingFollowUp returns the subset of prospects due for a follow-up
// at the given time.
func NeedingFollowUp(prospects []domain.Prospect, now time.Time) []domain.Prospect {
	out := make([]domain.Prospect, 0)
	for _, p := range prospects {
		if domain.FollowUpDue(p, now) {
			out = append(out, p)
		}
	}
	return out
}
