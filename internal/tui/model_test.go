package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/engine"
	"github.com/rkuznets/coachcal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	eng := engine.New(engine.Options{Now: func() time.Time { return now }})
	t.Cleanup(eng.Close)

	eng.SetSessions([]domain.Session{{
		ID:              "s-1",
		ParticipantID:   "p-1",
		ParticipantName: "Mara",
		Date:            time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:30",
		EndTime:         "10:30",
		Activities:      []string{"technique"},
		LifecycleStatus: domain.LifecycleScheduled,
	}})
	eng.SetAvailability([]domain.AvailabilityMark{{
		ID:   "m-1",
		Date: time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC),
		Kind: domain.AvailabilityAbsenceApproved,
	}})
	return New(eng, time.Minute)
}

func press(m *Model, k string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestModel_MonthViewShowsAnchorMonth(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "Mo  Tu  We")
}

func TestModel_SwitchToDayShowsSessions(t *testing.T) {
	m := newTestModel(t)
	press(m, "d")

	state := m.eng.ViewState()
	assert.Equal(t, domain.GranularityDay, state.Granularity)

	out := m.View()
	assert.Contains(t, out, "Mara")
	assert.Contains(t, out, "09:30–10:30")
}

func TestModel_WeekNavigationUpdatesMiniRange(t *testing.T) {
	m := newTestModel(t)
	press(m, "w")
	require.Equal(t, domain.GranularityWeek, m.lastRange.Granularity)
	weekStart := m.lastRange.Range.Start

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, weekStart.AddDate(0, 0, 7), m.lastRange.Range.Start,
		"subscription keeps the mini-calendar range in sync")
}

func TestModel_QuitClosesEngine(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_TickReschedules(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "every tick schedules the next one")
}

func TestModel_DecorationGlyphPrecedence(t *testing.T) {
	m := newTestModel(t)

	// Session dot wins on a day that has sessions.
	assert.Equal(t, "•", decorationGlyph(m, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)))
	// Approved absence glyph on a session-free day.
	assert.Equal(t, "✕", decorationGlyph(m, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, " ", decorationGlyph(m, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)))
}

func TestModel_OpenDayForcesDayView(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.eng.SelectDate(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, domain.GranularityDay, m.eng.ViewState().Granularity)
	assert.Equal(t, view.DateRange{
		Start: time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
	}, m.lastRange.Range)
}
