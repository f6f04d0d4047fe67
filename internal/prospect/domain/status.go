package domain

import "time"

// Kanban statuses. Any status may transition to any other.
const (
	StatusNewLead      = "new_lead"
	StatusContacted    = "contacted"
	StatusConversation = "conversation"
	StatusBooked       = "booked"
	StatusClosed       = "closed"
)

// Priorities, in cycle order.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Statuses lists all kanban columns in pipeline order.
var Statuses = []string{StatusNewLead, StatusContacted, StatusConversation, StatusBooked, StatusClosed}

func ValidStatus(status string) bool {
	switch status {
	case StatusNewLead, StatusContacted, StatusConversation, StatusBooked, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NextPriority advances the priority cycle low -> medium -> high -> low.
// Unknown values restart at low.
func NextPriority(priority string) string {
	switch priority {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// FollowUpWindow is how long a prospect may go without contact before it
// counts as due for follow-up.
const FollowUpWindow = 48 * time.Hour

// FollowUpDue reports whether the prospect needs a follow-up at the given
// time. Prospects never contacted do not count; neither do booked, closed
// or archived ones. Exactly 48 hours of silence already counts as due.
func FollowUpDue(p Prospect, now time.Time) bool {
	if p.IsArchived || p.Status == StatusClosed || p.Status == StatusBooked {
		return false
	}
	if p.LastContact == nil || p.LastContact.IsZero() {
		return false
	}
	return now.Sub(*p.LastContact) >= FollowUpWindow
}
