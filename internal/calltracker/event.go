package calltracker

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// MonthRollover is published when a user's call counter crosses a month
// boundary. Month is the archived month (YYYY-MM), PreviousTotal the
// count it closed with.
type MonthRollover struct {
	UserID        snowflake.ID
	Month         string
	PreviousTotal int
}

// Subscriber reacts to a month rollover. Subscriber failures are logged
// and do not fail the rollover itself.
type Subscriber interface {
	OnMonthRollover(ctx context.Context, ev MonthRollover) error
}
