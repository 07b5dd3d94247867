package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDayLayout_PlainSession(t *testing.T) {
	sessions := classify(t, sessionOn("s-1", "p-1", 10, "09:00", "10:30"))
	layout := BuildDayLayout(date(2024, time.June, 10), sessions, 0)

	require.Len(t, layout.Blocks, 1)
	b := layout.Blocks[0]
	assert.Equal(t, "s-1", b.SessionID)
	assert.Equal(t, 9*60, b.StartOffsetMinutes)
	assert.Equal(t, 10*60+30, b.EndOffsetMinutes)
	assert.Equal(t, 90, b.HeightMinutes)
	assert.False(t, b.OverflowsToNextDay)
}

func TestBuildDayLayout_Overnight(t *testing.T) {
	sessions := classify(t, sessionOn("s-1", "p-1", 10, "23:00", "01:00"))
	layout := BuildDayLayout(date(2024, time.June, 10), sessions, 0)

	require.Len(t, layout.Blocks, 1)
	b := layout.Blocks[0]
	assert.Equal(t, 23*60, b.StartOffsetMinutes)
	assert.Equal(t, 1500, b.EndOffsetMinutes, "25:00 in day-relative minutes")
	assert.Equal(t, 120, b.HeightMinutes)
	assert.True(t, b.OverflowsToNextDay)
}

func TestBuildDayLayout_MinimumHeight(t *testing.T) {
	sessions := classify(t, sessionOn("s-1", "p-1", 10, "09:00", "09:15"))
	layout := BuildDayLayout(date(2024, time.June, 10), sessions, 0)

	require.Len(t, layout.Blocks, 1)
	assert.Equal(t, DefaultMinimumBlockMinutes, layout.Blocks[0].HeightMinutes,
		"a 15 min session still fills one grid row")
}

func TestBuildDayLayout_CustomMinimum(t *testing.T) {
	sessions := classify(t, sessionOn("s-1", "p-1", 10, "09:00", "09:05"))
	layout := BuildDayLayout(date(2024, time.June, 10), sessions, 30)
	require.Len(t, layout.Blocks, 1)
	assert.Equal(t, 30, layout.Blocks[0].HeightMinutes)
}

func TestBuildDayLayout_OverlapsStayIndependent(t *testing.T) {
	// Same participant double-booked: blocks stack, no collision packing.
	sessions := classify(t,
		sessionOn("s-1", "p-1", 10, "09:00", "10:00"),
		sessionOn("s-2", "p-1", 10, "09:00", "10:00"),
	)
	layout := BuildDayLayout(date(2024, time.June, 10), sessions, 0)

	require.Len(t, layout.Blocks, 2)
	assert.Equal(t, layout.Blocks[0].StartOffsetMinutes, layout.Blocks[1].StartOffsetMinutes)
	assert.Equal(t, layout.Blocks[0].EndOffsetMinutes, layout.Blocks[1].EndOffsetMinutes)
}

func TestEarliestSession(t *testing.T) {
	sessions := classify(t,
		sessionOn("s-2", "p-1", 10, "10:00", "11:00"),
		sessionOn("s-1", "p-2", 10, "08:00", "09:00"),
	)

	earliest, ok := EarliestSession(sessions)
	require.True(t, ok)
	assert.Equal(t, "s-1", earliest.ID)
}

func TestEarliestSession_TieKeepsFirstInput(t *testing.T) {
	sessions := classify(t,
		sessionOn("s-b", "p-1", 10, "08:00", "09:00"),
		sessionOn("s-a", "p-2", 10, "08:00", "10:00"),
	)

	earliest, ok := EarliestSession(sessions)
	require.True(t, ok)
	assert.Equal(t, "s-b", earliest.ID)
}

func TestEarliestSession_Empty(t *testing.T) {
	_, ok := EarliestSession(nil)
	assert.False(t, ok)
}

// TestBuildDayLayout_Invariants property-tests the layout bounds over random
// sessions: height never drops below the minimum and end never precedes start.
func TestBuildDayLayout_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		minBlock := rng.Intn(90) + 1
		numSessions := rng.Intn(8)
		sessions := make([]domain.Session, numSessions)
		for i := range sessions {
			sessions[i] = sessionOn(
				"s-"+string(rune('a'+i)), "p-1", 10,
				clockString(rng.Intn(24), rng.Intn(60)),
				clockString(rng.Intn(24), rng.Intn(60)),
			)
		}
		classified, skipped := ClassifyAll(date(2024, time.June, 10), sessions)
		require.Empty(t, skipped, "trial %d", trial)

		layout := BuildDayLayout(date(2024, time.June, 10), classified, minBlock)

		require.Len(t, layout.Blocks, numSessions, "trial %d", trial)
		for j, b := range layout.Blocks {
			assert.GreaterOrEqual(t, b.HeightMinutes, minBlock,
				"trial %d block %d: height below minimum", trial, j)
			assert.GreaterOrEqual(t, b.EndOffsetMinutes, b.StartOffsetMinutes,
				"trial %d block %d: end before start", trial, j)
			assert.GreaterOrEqual(t, b.StartOffsetMinutes, 0, "trial %d block %d", trial, j)
			assert.Less(t, b.StartOffsetMinutes, minutesPerDay, "trial %d block %d", trial, j)
			assert.LessOrEqual(t, b.EndOffsetMinutes, 2*minutesPerDay, "trial %d block %d", trial, j)
		}
	}
}
