package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func testSession(id, participantID string, d int, start, end string) domain.Session {
	return domain.Session{
		ID:              id,
		ParticipantID:   participantID,
		ParticipantName: "Participant " + participantID,
		Date:            day(d),
		StartTime:       start,
		EndTime:         end,
		LifecycleStatus: domain.LifecycleScheduled,
	}
}

// tickingEngine returns an engine with a controllable wall clock.
func tickingEngine(t *testing.T, start time.Time) (*Engine, *time.Time) {
	t.Helper()
	now := start
	e := New(Options{Now: func() time.Time { return now }})
	t.Cleanup(e.Close)
	return e, &now
}

func TestEngine_ReclassifiesOnTick(t *testing.T) {
	e, now := tickingEngine(t, time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC))
	e.SetSessions([]domain.Session{testSession("s-1", "p-1", 10, "09:00", "10:00")})

	groups := e.DayGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, domain.TemporalOngoing, groups[0].Sessions[0].TemporalState)

	// An hour passes; the next tick must flip the session to past without
	// any user action.
	*now = now.Add(time.Hour)
	e.Refresh()

	groups = e.DayGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, domain.TemporalPast, groups[0].Sessions[0].TemporalState)
}

func TestEngine_ParticipantFilterExcludesEverywhere(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	e.SetSessions([]domain.Session{
		testSession("s-1", "p-1", 10, "09:00", "10:00"),
		testSession("s-2", "p-2", 10, "11:00", "12:00"),
	})

	e.SetParticipantFilter([]string{"p-2"})

	groups := e.DayGroups()
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Sessions, 1)
	assert.Equal(t, "s-2", groups[0].Sessions[0].ID)

	layout := e.LayoutFor(day(10))
	require.Len(t, layout.Blocks, 1, "filtered sessions are absent from layout too")
	assert.Equal(t, "s-2", layout.Blocks[0].SessionID)

	e.SetParticipantFilter(nil)
	require.Len(t, e.DayGroups()[0].Sessions, 2, "empty filter restores the full window")
}

func TestEngine_InvalidSessionSkippedAndReported(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	e := New(Options{
		Now:      func() time.Time { return now },
		Observer: NewLogObserver(&buf),
	})
	defer e.Close()

	bad := testSession("s-bad", "p-1", 10, "late", "later")
	e.SetSessions([]domain.Session{
		testSession("s-1", "p-1", 10, "09:00", "10:00"),
		bad,
	})

	require.Len(t, e.DayGroups(), 1, "valid sessions still render")
	require.Len(t, e.InvalidSessions(), 1)
	assert.Equal(t, "s-bad", e.InvalidSessions()[0].SessionID)
	assert.Contains(t, buf.String(), "session_excluded")
	assert.Contains(t, buf.String(), "timeline_recompute")
}

func TestEngine_LayoutForEmptyDay(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))

	layout := e.LayoutFor(day(12))
	assert.Equal(t, day(12), layout.Date)
	assert.Empty(t, layout.Blocks, "a day with no sessions is a valid empty state")
}

func TestEngine_DecorationFor(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	e.SetAvailability([]domain.AvailabilityMark{
		{ID: "m-1", Date: day(11), Kind: domain.AvailabilityAbsenceApproved},
		{ID: "m-2", Date: day(11), Kind: domain.AvailabilityAvailable},
	})

	assert.Equal(t, domain.DecorationApprovedAbsence, e.DecorationFor(day(11)))
	assert.Equal(t, domain.DecorationNone, e.DecorationFor(day(12)))
}

func TestEngine_Callbacks(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	e.SetSessions([]domain.Session{testSession("s-1", "p-1", 10, "09:00", "10:00")})

	var activated []string
	var selected []time.Time
	var ranges []view.RangeChange
	e.OnSessionActivated(func(cs domain.ClassifiedSession) { activated = append(activated, cs.ID) })
	e.OnDateSelected(func(d time.Time) { selected = append(selected, d) })
	e.OnViewRangeChanged(func(rc view.RangeChange) { ranges = append(ranges, rc) })

	assert.True(t, e.ActivateSession("s-1"))
	assert.False(t, e.ActivateSession("s-unknown"))
	require.NoError(t, e.SelectDate(day(12)))
	require.NoError(t, e.OpenDay(day(12)))

	assert.Equal(t, []string{"s-1"}, activated)
	assert.Len(t, selected, 2)
	require.Len(t, ranges, 2, "both jump paths emit a range change")
	assert.Equal(t, domain.GranularityMonth, ranges[0].Granularity, "unforced selection keeps month view")
	assert.Equal(t, domain.GranularityDay, ranges[1].Granularity, "forced jump switches to day view")
}

func TestEngine_SelectDateRejectsZero(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, e.SelectDate(time.Time{}), view.ErrInvalidDate)
}

func TestEngine_DoesNotMutateCallerSlice(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	input := []domain.Session{
		testSession("s-2", "p-1", 11, "09:00", "10:00"),
		testSession("s-1", "p-1", 10, "09:00", "10:00"),
	}
	e.SetSessions(input)

	assert.Equal(t, "s-2", input[0].ID)
	assert.Equal(t, "s-1", input[1].ID)
}

func TestEngine_CloseStopsReclassification(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)
	e := New(Options{Now: func() time.Time { return now }})
	e.SetSessions([]domain.Session{testSession("s-1", "p-1", 10, "09:00", "10:00")})
	e.Close()

	now = now.Add(time.Hour)
	e.Refresh() // tick after Close: subscription is gone

	groups := e.DayGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, domain.TemporalOngoing, groups[0].Sessions[0].TemporalState,
		"a closed engine no longer reacts to ticks")
}

func TestEngine_GroupFor(t *testing.T) {
	e, _ := tickingEngine(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC))
	e.SetSessions([]domain.Session{testSession("s-1", "p-1", 10, "09:00", "10:00")})

	g, ok := e.GroupFor(day(10))
	require.True(t, ok)
	assert.Len(t, g.Sessions, 1)

	_, ok = e.GroupFor(day(11))
	assert.False(t, ok)
}

func TestEngine_ObserverOutputIsStructured(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	e := New(Options{Now: func() time.Time { return now }, Observer: NewLogObserver(&buf)})
	defer e.Close()

	e.SetSessions([]domain.Session{testSession("s-1", "p-1", 10, "09:00", "10:00")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "total=1")
}
