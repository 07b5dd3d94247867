package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/timeline"
	"github.com/rkuznets/coachcal/internal/view"
)

var (
	styleTab          = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	styleTabActive    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("212"))
	styleHeader       = lipgloss.NewStyle().Bold(true)
	styleDim          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleSelected     = lipgloss.NewStyle().Reverse(true)
	styleOngoing      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleUpcoming     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	stylePast         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleCancelled    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Strikethrough(true)
	styleNeedsConfirm = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleMiniTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
)

func (m *Model) renderHeader(state view.State) string {
	tabs := []struct {
		g     domain.Granularity
		label string
	}{
		{domain.GranularityMonth, "Month"},
		{domain.GranularityWeek, "Week"},
		{domain.GranularityDay, "Day"},
	}
	var parts []string
	for _, t := range tabs {
		if t.g == state.Granularity {
			parts = append(parts, styleTabActive.Render(t.label))
		} else {
			parts = append(parts, styleTab.Render(t.label))
		}
	}

	r := m.lastRange.Range
	var rangeText string
	switch state.Granularity {
	case domain.GranularityDay:
		rangeText = r.Start.Format("Mon, 02 Jan 2006")
	case domain.GranularityWeek:
		rangeText = fmt.Sprintf("%s – %s", r.Start.Format("02 Jan"), r.End.Format("02 Jan 2006"))
	default:
		rangeText = state.AnchorMonth.Format("January 2006")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Join(parts, ""), "  ", styleHeader.Render(rangeText))
}

func (m *Model) renderFooter() string {
	helpLine := m.help.ShortHelpView(m.keys.shortHelp())
	if n := len(m.eng.InvalidSessions()); n > 0 {
		helpLine += styleDim.Render(fmt.Sprintf("   %d record(s) excluded, see logs", n))
	}
	return helpLine
}

// renderMonth prints a classic 7-column month grid. Each cell shows the day
// number, a session dot when sessions exist, and an availability glyph.
// A session dot always wins over the availability decoration.
func (m *Model) renderMonth(state view.State) string {
	var b strings.Builder
	b.WriteString(styleDim.Render(" Mo  Tu  We  Th  Fr  Sa  Su") + "\n")

	first := state.AnchorMonth
	cursor := view.MondayOf(first)
	lastDay := first.AddDate(0, 1, -1)

	for !cursor.After(lastDay) {
		for i := 0; i < 7; i++ {
			day := cursor.AddDate(0, 0, i)
			b.WriteString(m.renderMonthCell(day, state))
		}
		b.WriteString("\n")
		cursor = cursor.AddDate(0, 0, 7)
	}
	return b.String()
}

func (m *Model) renderMonthCell(day time.Time, state view.State) string {
	inMonth := day.Month() == state.AnchorMonth.Month()
	cell := fmt.Sprintf("%3d", day.Day()) + decorationGlyph(m, day)

	style := lipgloss.NewStyle()
	if !inMonth {
		style = styleDim
	}
	if sel := state.SelectedDay; sel != nil && sameDay(*sel, day) {
		style = styleSelected
	}
	return style.Render(cell)
}

// decorationGlyph picks the one-character marker for a date: session dot
// first, then the availability decoration.
func decorationGlyph(m *Model, day time.Time) string {
	if _, ok := m.eng.GroupFor(day); ok {
		return "•"
	}
	switch m.eng.DecorationFor(day) {
	case domain.DecorationApprovedAbsence:
		return "✕"
	case domain.DecorationPendingAbsence:
		return "?"
	case domain.DecorationUnavailable:
		return "–"
	case domain.DecorationAvailable:
		return "+"
	default:
		return " "
	}
}

func (m *Model) renderWeek(state view.State) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		day := state.AnchorWeekStart.AddDate(0, 0, i)
		b.WriteString(styleHeader.Render(day.Format("Mon 02 Jan")))
		if deco := m.eng.DecorationFor(day); deco != domain.DecorationNone {
			b.WriteString(" " + styleDim.Render(string(deco)))
		}
		b.WriteString("\n")

		group, ok := m.eng.GroupFor(day)
		if !ok {
			b.WriteString(styleDim.Render("  no sessions") + "\n")
			continue
		}
		for _, pg := range group.Participants {
			b.WriteString("  " + pg.ParticipantName + "\n")
			for _, s := range pg.Sessions {
				b.WriteString("    " + renderSessionLine(s) + "\n")
			}
		}
	}
	return b.String()
}

// renderDay prints the 24-row hour grid. Blocks are attached to the row
// containing their start offset; overnight blocks note the spill-over.
func (m *Model) renderDay(state view.State) string {
	day := m.lastRange.Range.Start
	layout := m.eng.LayoutFor(day)
	group, _ := m.eng.GroupFor(day)

	byRow := make(map[int][]string)
	for _, block := range layout.Blocks {
		row := block.StartOffsetMinutes / timeline.RowUnitMinutes
		line := describeBlock(block, group)
		byRow[row] = append(byRow[row], line)
	}

	var b strings.Builder
	if len(layout.Blocks) == 0 {
		b.WriteString(styleDim.Render("No sessions on this day.") + "\n")
	}
	for hour := 0; hour < 24; hour++ {
		label := fmt.Sprintf("%02d:00 │", hour)
		lines := byRow[hour]
		if len(lines) == 0 {
			b.WriteString(styleDim.Render(label) + "\n")
			continue
		}
		b.WriteString(styleDim.Render(label) + " " + lines[0] + "\n")
		for _, extra := range lines[1:] {
			b.WriteString(styleDim.Render("      │") + " " + extra + "\n")
		}
	}
	return b.String()
}

func describeBlock(block timeline.LayoutBlock, group timeline.DayGroup) string {
	for _, s := range group.Sessions {
		if s.ID != block.SessionID {
			continue
		}
		line := renderSessionLine(s)
		if block.OverflowsToNextDay {
			line += styleDim.Render(" (into next day)")
		}
		return line
	}
	return block.SessionID
}

func renderSessionLine(s domain.ClassifiedSession) string {
	text := fmt.Sprintf("%s–%s %s", s.StartTime, s.EndTime, s.ParticipantName)
	if len(s.Activities) > 0 {
		text += " · " + strings.Join(s.Activities, ", ")
	}

	switch {
	case s.IsCancelled:
		return styleCancelled.Render(text)
	case s.NeedsConfirmation:
		return styleNeedsConfirm.Render(text + " (unconfirmed)")
	}
	switch s.TemporalState {
	case domain.TemporalOngoing:
		return styleOngoing.Render(text + " ●")
	case domain.TemporalUpcoming:
		return styleUpcoming.Render(text)
	default:
		return stylePast.Render(text)
	}
}

// renderMiniCalendar is the companion pane: a compact month for the anchor
// month with the synchronized visible range highlighted.
func (m *Model) renderMiniCalendar(state view.State) string {
	var b strings.Builder
	b.WriteString(styleMiniTitle.Render(state.AnchorMonth.Format("Jan 2006")) + "\n")
	b.WriteString(styleDim.Render("Mo Tu We Th Fr Sa Su") + "\n")

	first := state.AnchorMonth
	cursor := view.MondayOf(first)
	lastDay := first.AddDate(0, 1, -1)

	for !cursor.After(lastDay) {
		cells := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			day := cursor.AddDate(0, 0, i)
			cell := fmt.Sprintf("%2d", day.Day())
			switch {
			case day.Month() != first.Month():
				cell = styleDim.Render(cell)
			case state.SelectedDay != nil && sameDay(*state.SelectedDay, day):
				cell = styleSelected.Render(cell)
			case m.lastRange.Range.Contains(day):
				cell = styleTabActive.Render(cell)
			}
			cells = append(cells, cell)
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
		cursor = cursor.AddDate(0, 0, 7)
	}
	return b.String()
}

func joinWithMiniCalendar(body, mini string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(3).Render(body), mini)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
