package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextPriorityCycle(t *testing.T) {
	assert.Equal(t, PriorityMedium, NextPriority(PriorityLow))
	assert.Equal(t, PriorityHigh, NextPriority(PriorityMedium))
	assert.Equal(t, PriorityLow, NextPriority(PriorityHigh))
	assert.Equal(t, PriorityLow, NextPriority("bogus"))
}

func TestFollowUpDueBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	exactly := now.Add(-FollowUpWindow)
	justUnder := now.Add(-FollowUpWindow + time.Minute)

	assert.True(t, FollowUpDue(Prospect{Status: StatusContacted, LastContact: &exactly}, now), "exactly 48h is due")
	assert.False(t, FollowUpDue(Prospect{Status: StatusContacted, LastContact: &justUnder}, now), "47h59m is not")
}

func TestFollowUpDueExclusions(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-72 * time.Hour)
	var zero time.Time

	assert.False(t, FollowUpDue(Prospect{Status: StatusContacted, LastContact: nil}, now), "never contacted")
	assert.False(t, FollowUpDue(Prospect{Status: StatusContacted, LastContact: &zero}, now), "zero timestamp")
	assert.False(t, FollowUpDue(Prospect{Status: StatusClosed, LastContact: &old}, now), "closed")
	assert.False(t, FollowUpDue(Prospect{Status: StatusBooked, LastContact: &old}, now), "booked")
	assert.False(t, FollowUpDue(Prospect{Status: StatusContacted, LastContact: &old, IsArchived: true}, now), "archived")
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, status := range Statuses {
		assert.True(t, ValidStatus(status))
	}
	assert.False(t, ValidStatus("won"))
	assert.True(t, ValidPriority(PriorityLow))
	assert.False(t, ValidPriority("urgent"))
}
