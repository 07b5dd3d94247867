// Package tui renders the booking calendar in the terminal: month, week and
// day views driven by the engine's navigation controller, with a mini
// calendar pane kept in sync through the range-change subscription.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/engine"
	"github.com/rkuznets/coachcal/internal/view"
)

// tickMsg triggers a reclassification pass.
type tickMsg time.Time

// Model is the root bubbletea model. It owns the engine for the duration of
// the program and releases the clock subscription on quit.
type Model struct {
	eng  *engine.Engine
	keys keyMap
	help help.Model

	tickEvery time.Duration
	width     int
	height    int
	quitting  bool

	// lastRange mirrors the controller's emitted range; the mini calendar
	// highlights from it rather than re-deriving the range itself.
	lastRange   view.RangeChange
	unsubscribe func()
}

// New builds the TUI model around an engine the caller has already loaded
// with sessions and availability.
func New(eng *engine.Engine, tickEvery time.Duration) *Model {
	if tickEvery <= 0 {
		tickEvery = view.DefaultTickInterval
	}
	m := &Model{
		eng:       eng,
		keys:      defaultKeyMap(),
		help:      help.New(),
		tickEvery: tickEvery,
	}
	m.lastRange = view.RangeChange{
		Range:       eng.ViewState().VisibleRange(),
		Granularity: eng.ViewState().Granularity,
	}
	m.unsubscribe = eng.Controller().Subscribe(func(rc view.RangeChange) {
		m.lastRange = rc
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.eng.Refresh()
		return m, m.scheduleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.eng.Controller()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.unsubscribe()
		m.eng.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Month):
		ctrl.SwitchToMonth()

	case key.Matches(msg, m.keys.Week):
		ctrl.SwitchToWeek()

	case key.Matches(msg, m.keys.Day):
		_ = ctrl.SwitchToDay(nil)

	case key.Matches(msg, m.keys.Prev):
		ctrl.Navigate(view.Prev)

	case key.Matches(msg, m.keys.Next):
		ctrl.Navigate(view.Next)

	case key.Matches(msg, m.keys.PrevDay):
		_ = m.eng.SelectDate(m.highlightedDay().AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		_ = m.eng.SelectDate(m.highlightedDay().AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Today):
		_ = m.eng.OpenDay(time.Now())

	case key.Matches(msg, m.keys.Open):
		_ = m.eng.OpenDay(m.highlightedDay())
	}
	return m, nil
}

// highlightedDay is the externally selected day, defaulting to the start of
// the visible range.
func (m *Model) highlightedDay() time.Time {
	if sel := m.eng.ViewState().SelectedDay; sel != nil {
		return *sel
	}
	return m.lastRange.Range.Start
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.eng.ViewState()
	var body string
	switch state.Granularity {
	case domain.GranularityWeek:
		body = m.renderWeek(state)
	case domain.GranularityDay:
		body = m.renderDay(state)
	default:
		body = m.renderMonth(state)
	}

	return m.renderHeader(state) + "\n" +
		joinWithMiniCalendar(body, m.renderMiniCalendar(state)) + "\n" +
		m.renderFooter()
}
