package timeline

import (
	"testing"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, sessions ...domain.Session) []domain.ClassifiedSession {
	t.Helper()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	classified, skipped := ClassifyAll(now, sessions)
	require.Empty(t, skipped)
	return classified
}

func sessionOn(id, participantID string, day int, start, end string) domain.Session {
	s := makeSession(id, participantID, start, end)
	s.Date = date(2024, time.June, day)
	return s
}

func TestGroupByDate_SortsByDateThenStart(t *testing.T) {
	groups := GroupByDate(classify(t,
		sessionOn("s-3", "p-1", 11, "08:00", "09:00"),
		sessionOn("s-1", "p-1", 10, "14:00", "15:00"),
		sessionOn("s-2", "p-2", 10, "09:00", "10:00"),
	))

	require.Len(t, groups, 2)
	assert.Equal(t, date(2024, time.June, 10), groups[0].Date)
	assert.Equal(t, date(2024, time.June, 11), groups[1].Date)

	require.Len(t, groups[0].Sessions, 2)
	assert.Equal(t, "s-2", groups[0].Sessions[0].ID, "earlier start sorts first within a day")
	assert.Equal(t, "s-1", groups[0].Sessions[1].ID)
}

func TestGroupByDate_TieKeepsInputOrder(t *testing.T) {
	// Two sessions at the same (date, startTime): stable, no secondary key.
	groups := GroupByDate(classify(t,
		sessionOn("s-b", "p-2", 10, "09:00", "10:00"),
		sessionOn("s-a", "p-1", 10, "09:00", "11:00"),
	))

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Sessions, 2)
	assert.Equal(t, "s-b", groups[0].Sessions[0].ID, "input order must survive equal sort keys")
	assert.Equal(t, "s-a", groups[0].Sessions[1].ID)
}

func TestGroupByParticipant_FirstSeenOrder(t *testing.T) {
	sessions := classify(t,
		sessionOn("s-1", "p-2", 10, "09:00", "10:00"),
		sessionOn("s-2", "p-1", 10, "10:00", "11:00"),
		sessionOn("s-3", "p-2", 10, "12:00", "13:00"),
	)

	groups := GroupByParticipant(sessions)

	require.Len(t, groups, 2)
	assert.Equal(t, "p-2", groups[0].ParticipantID, "first-seen participant leads")
	assert.Equal(t, "p-1", groups[1].ParticipantID)
	assert.Len(t, groups[0].Sessions, 2)
	assert.Len(t, groups[1].Sessions, 1)
}

func TestGrouping_StableAcrossRecomputation(t *testing.T) {
	sessions := classify(t,
		sessionOn("s-1", "p-3", 10, "09:00", "10:00"),
		sessionOn("s-2", "p-1", 10, "09:00", "10:00"),
		sessionOn("s-3", "p-2", 10, "09:00", "10:00"),
	)

	first := GroupByDate(sessions)
	for run := 0; run < 10; run++ {
		assert.Equal(t, first, GroupByDate(sessions), "run %d must match first grouping", run)
	}
}

func TestGroupByDate_Empty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil))
}

func TestGroupByDate_DoesNotMutateInput(t *testing.T) {
	sessions := classify(t,
		sessionOn("s-2", "p-1", 11, "09:00", "10:00"),
		sessionOn("s-1", "p-1", 10, "09:00", "10:00"),
	)
	GroupByDate(sessions)
	assert.Equal(t, "s-2", sessions[0].ID, "caller-owned slice must stay untouched")
}
