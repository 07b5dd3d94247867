// Package view owns the calendar navigation state: the active granularity
// (month, week or day), its anchors, and the ticking clock that drives
// reclassification. State changes only through Controller transitions; hosts
// bind to the emitted values and never write the state directly.
package view

import (
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// State is the navigation state of the calendar. AnchorMonth is the first
// day of the viewed month; AnchorWeekStart is always a Monday. SelectedDay
// is nil outside day view unless a date was highlighted externally.
type State struct {
	Granularity     domain.Granularity
	AnchorMonth     time.Time
	AnchorWeekStart time.Time
	SelectedDay     *time.Time
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls within the range.
func (r DateRange) Contains(date time.Time) bool {
	d := midnight(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

// RangeChange is emitted to subscribers (the mini-calendar contract) after
// every transition.
type RangeChange struct {
	Range       DateRange
	Granularity domain.Granularity
}

// NewState returns the initial state: month view anchored on now's month,
// week anchor on the Monday of now's week.
func NewState(now time.Time) State {
	return State{
		Granularity:     domain.GranularityMonth,
		AnchorMonth:     MonthOf(now),
		AnchorWeekStart: MondayOf(now),
	}
}

// VisibleRange returns the inclusive date range the state renders. The week
// anchor, not the month anchor, governs week view; day view renders the
// selected day alone.
func (s State) VisibleRange() DateRange {
	switch s.Granularity {
	case domain.GranularityWeek:
		return DateRange{Start: s.AnchorWeekStart, End: s.AnchorWeekStart.AddDate(0, 0, 6)}
	case domain.GranularityDay:
		day := s.AnchorWeekStart
		if s.SelectedDay != nil {
			day = midnight(*s.SelectedDay)
		}
		return DateRange{Start: day, End: day}
	default:
		return DateRange{
			Start: s.AnchorMonth,
			End:   s.AnchorMonth.AddDate(0, 1, -1),
		}
	}
}

// MondayOf returns the Monday starting the week containing t.
func MondayOf(t time.Time) time.Time {
	d := midnight(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// MonthOf returns the first day of the month containing t.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
