package pipeline

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fv(v float64) *float64 { return &v }

func sample() []domain.Prospect {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Prospect{
		{ID: snowflake.ID(1), UserID: snowflake.ID(41), Name: "Alice Cooper", Handle: "@alice", Platform: "instagram", Priority: domain.PriorityHigh, Value: fv(5000), CreatorName: "Ana", CreatedAt: base},
		{ID: snowflake.ID(2), UserID: snowflake.ID(41), Name: "Bob Stone", Handle: "@bobstone", Platform: "linkedin", Priority: domain.PriorityLow, Value: fv(1200), CreatorName: "Ana", CreatedAt: base.Add(time.Hour)},
		{ID: snowflake.ID(3), UserID: snowflake.ID(42), Name: "Carla Diaz", Handle: "@carla", Platform: "instagram", Priority: domain.PriorityMedium, Value: nil, CreatorName: "Luis", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestApplySearchMatchesNameAndHandle(t *testing.T) {
	got := Apply(sample(), Query{Search: "bobstone"})
	require.Len(t, got, 1)
	assert.Equal(t, "Bob Stone", got[0].Name)

	got = Apply(sample(), Query{Search: "ALICE"})
	require.Len(t, got, 1)
	assert.Equal(t, "Alice Cooper", got[0].Name)
}

func TestApplyPlatformAndPriority(t *testing.T) {
	got := Apply(sample(), Query{Platform: "instagram"})
	assert.Len(t, got, 2)

	got = Apply(sample(), Query{Platform: "instagram", Priority: domain.PriorityHigh})
	require.Len(t, got, 1)
	assert.Equal(t, snowflake.ID(1), got[0].ID)
}

func TestApplyValueRangeTreatsNilAsZero(t *testing.T) {
	got := Apply(sample(), Query{MinValue: fv(1000)})
	assert.Len(t, got, 2)

	got = Apply(sample(), Query{MaxValue: fv(100)})
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Value)
}

func TestApplyCreatorFilterMatchesUserID(t *testing.T) {
	got := Apply(sample(), Query{Creator: "42"})
	require.Len(t, got, 1)
	assert.Equal(t, "Carla Diaz", got[0].Name)

	// The display name is not a match key.
	assert.Empty(t, Apply(sample(), Query{Creator: "Luis"}))
}

func TestOwnedBy(t *testing.T) {
	got := OwnedBy(sample(), snowflake.ID(41))
	require.Len(t, got, 2)
	assert.Equal(t, snowflake.ID(1), got[0].ID)
	assert.Equal(t, snowflake.ID(2), got[1].ID)

	assert.Empty(t, OwnedBy(sample(), snowflake.ID(99)))
}

func TestApplySortOrders(t *testing.T) {
	newest := Apply(sample(), Query{SortBy: SortNewest})
	assert.Equal(t, snowflake.ID(3), newest[0].ID)

	oldest := Apply(sample(), Query{SortBy: SortOldest})
	assert.Equal(t, snowflake.ID(1), oldest[0].ID)

	highest := Apply(sample(), Query{SortBy: SortHighest})
	assert.Equal(t, snowflake.ID(1), highest[0].ID)

	lowest := Apply(sample(), Query{SortBy: SortLowest})
	assert.Nil(t, lowest[0].Value)

	byPriority := Apply(sample(), Query{SortBy: SortPriority})
	assert.Equal(t, domain.PriorityHigh, byPriority[0].Priority)
	assert.Equal(t, domain.PriorityLow, byPriority[2].Priority)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	_ = Apply(in, Query{SortBy: SortLowest})
	assert.Equal(t, snowflake.ID(1), in[0].ID)
	assert.Equal(t, snowflake.ID(3), in[2].ID)
}

func TestApplyIsIdempotent(t *testing.T) {
	q := Query{Platform: "instagram", SortBy: SortHighest}
	once := Apply(sample(), q)
	twice := Apply(once, q)
	assert.Equal(t, once, twice)
}

func TestNeedingFollowUp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-49 * time.Hour)
	recent := now.Add(-47 * time.Hour)

	prospects := []domain.Prospect{
		{ID: snowflake.ID(1), Status: domain.StatusContacted, LastContact: &old},
		{ID: snowflake.ID(2), Status: domain.StatusContacted, LastContact: &recent},
		{ID: snowflake.ID(3), Status: domain.StatusClosed, LastContact: &old},
		{ID: snowflake.ID(4), Status: domain.StatusContacted, LastContact: nil},
	}

	due := NeedingFollowUp(prospects, now)
	require.Len(t, due, 1)
	assert.Equal(t, snowflake.ID(1), due[0].ID)
}
