package timeline

import (
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

const (
	// DefaultMinimumBlockMinutes keeps very short sessions tall enough to
	// fill one grid row.
	DefaultMinimumBlockMinutes = 50

	// RowUnitMinutes is the height of one grid row: one hour, 24 rows.
	RowUnitMinutes = 60

	minutesPerDay = 24 * 60
)

// LayoutBlock places one session on a 24-hour day grid. Offsets are minutes
// relative to midnight of the viewed day; EndOffsetMinutes exceeds 1439 when
// the session continues past midnight.
type LayoutBlock struct {
	SessionID          string
	StartOffsetMinutes int
	EndOffsetMinutes   int
	HeightMinutes      int
	OverflowsToNextDay bool
}

// DayLayout is the full grid placement for one viewed day. Blocks are
// independent per session: simultaneous sessions of different participants
// render in parallel lanes by participant grouping, so no horizontal
// collision packing is done here.
type DayLayout struct {
	Date   time.Time
	Blocks []LayoutBlock
}

// BuildDayLayout computes grid placements for one day's sessions.
// minimumBlockMinutes ≤ 0 falls back to DefaultMinimumBlockMinutes.
func BuildDayLayout(date time.Time, sessions []domain.ClassifiedSession, minimumBlockMinutes int) DayLayout {
	if minimumBlockMinutes <= 0 {
		minimumBlockMinutes = DefaultMinimumBlockMinutes
	}
	layout := DayLayout{Date: Midnight(date)}
	for _, s := range sessions {
		start := MinuteOfDay(s.Start)
		end := MinuteOfDay(s.End)
		if s.OverflowsToNextDay {
			end += minutesPerDay
		}
		layout.Blocks = append(layout.Blocks, LayoutBlock{
			SessionID:          s.ID,
			StartOffsetMinutes: start,
			EndOffsetMinutes:   end,
			HeightMinutes:      maxInt(minimumBlockMinutes, end-start),
			OverflowsToNextDay: s.OverflowsToNextDay,
		})
	}
	return layout
}

// EarliestSession returns the session with the earliest start instant, used
// to auto-scroll a day view to the first relevant block. Ties keep the first
// session in input order. ok is false for an empty day.
func EarliestSession(sessions []domain.ClassifiedSession) (earliest domain.ClassifiedSession, ok bool) {
	for _, s := range sessions {
		if !ok || s.Start.Before(earliest.Start) {
			earliest = s
			ok = true
		}
	}
	return earliest, ok
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
