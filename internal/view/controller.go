package view

import (
	"errors"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// ErrInvalidDate indicates a navigation target that is not a real date.
// Reported synchronously; there is no silent fallback to today.
var ErrInvalidDate = errors.New("invalid navigation date")

// Direction is a single-unit navigation step in the current granularity.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Controller is the single writer of the navigation State. Every transition
// notifies subscribers with the new visible range, which is how the
// mini-calendar stays in sync without reaching into the main view.
type Controller struct {
	state State
	now   func() time.Time

	nextSubID int
	subs      map[int]func(RangeChange)
}

// NewController creates a controller anchored on the current real-world
// month. nowFn may be nil, in which case time.Now is used; tests inject a
// fixed instant.
func NewController(nowFn func() time.Time) *Controller {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Controller{
		state: NewState(nowFn()),
		now:   nowFn,
		subs:  make(map[int]func(RangeChange)),
	}
}

// State returns the current navigation state value.
func (c *Controller) State() State {
	return c.state
}

// Subscribe registers a range-change listener and returns a disposer.
func (c *Controller) Subscribe(fn func(RangeChange)) func() {
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// SwitchToMonth leaves the current view for month granularity, anchored on
// the month containing the previous anchor. Leaving day view drops the day
// selection.
func (c *Controller) SwitchToMonth() {
	// Resolve the anchor before dropping the selection: the selected day,
	// not its week's Monday, decides which month stays on screen.
	c.state.AnchorMonth = MonthOf(c.anchorDate())
	if c.state.Granularity == domain.GranularityDay {
		c.state.SelectedDay = nil
	}
	c.state.Granularity = domain.GranularityMonth
	c.emit()
}

// SwitchToWeek switches to week granularity. The week anchor always resets
// to the Monday of the current real-world week, not whatever week was viewed
// last: the tab means "jump to this week", not a plain granularity toggle.
func (c *Controller) SwitchToWeek() {
	now := c.now()
	c.state.AnchorWeekStart = MondayOf(now)
	c.state.AnchorMonth = MonthOf(c.state.AnchorWeekStart)
	c.state.Granularity = domain.GranularityWeek
	c.emit()
}

// SwitchToDay switches to day granularity on the given date, defaulting to
// today. The month and week anchors follow the selected day.
func (c *Controller) SwitchToDay(date *time.Time) error {
	day := midnight(c.now())
	if date != nil {
		if date.IsZero() {
			return ErrInvalidDate
		}
		day = midnight(*date)
	}
	c.state.SelectedDay = &day
	c.state.AnchorMonth = MonthOf(day)
	c.state.AnchorWeekStart = MondayOf(day)
	c.state.Granularity = domain.GranularityDay
	c.emit()
	return nil
}

// JumpToDate highlights a date. When forceDayView is set the anchors move to
// contain the date and the view switches to day granularity. When not
// forced, only the highlight changes and the visible month/week stays put:
// this is what keeps local arrow navigation from snapping back when an
// external mini-calendar selection arrives.
func (c *Controller) JumpToDate(date time.Time, forceDayView bool) error {
	if date.IsZero() {
		return ErrInvalidDate
	}
	day := midnight(date)
	c.state.SelectedDay = &day
	if forceDayView {
		c.state.AnchorMonth = MonthOf(day)
		c.state.AnchorWeekStart = MondayOf(day)
		c.state.Granularity = domain.GranularityDay
	}
	c.emit()
	return nil
}

// Navigate advances the anchor one unit of the current granularity. Week
// navigation crossing a month boundary also moves the month anchor for the
// mini calendar, but the week anchor keeps governing what is rendered.
func (c *Controller) Navigate(dir Direction) {
	step := 1
	if dir == Prev {
		step = -1
	}

	switch c.state.Granularity {
	case domain.GranularityWeek:
		c.state.AnchorWeekStart = c.state.AnchorWeekStart.AddDate(0, 0, 7*step)
		c.state.AnchorMonth = MonthOf(c.state.AnchorWeekStart)

	case domain.GranularityDay:
		day := midnight(c.now())
		if c.state.SelectedDay != nil {
			day = *c.state.SelectedDay
		}
		day = day.AddDate(0, 0, step)
		c.state.SelectedDay = &day
		c.state.AnchorMonth = MonthOf(day)
		c.state.AnchorWeekStart = MondayOf(day)

	default:
		c.state.AnchorMonth = c.state.AnchorMonth.AddDate(0, step, 0)
	}
	c.emit()
}

// anchorDate is the date best describing what the user was looking at.
func (c *Controller) anchorDate() time.Time {
	switch c.state.Granularity {
	case domain.GranularityDay:
		if c.state.SelectedDay != nil {
			return *c.state.SelectedDay
		}
		return c.state.AnchorWeekStart
	case domain.GranularityWeek:
		return c.state.AnchorWeekStart
	default:
		return c.state.AnchorMonth
	}
}

func (c *Controller) emit() {
	change := RangeChange{Range: c.state.VisibleRange(), Granularity: c.state.Granularity}
	for _, fn := range c.subs {
		fn(change)
	}
}
