// Package engine ties the timeline derivations to a navigation controller
// and a ticking clock. It is handed full data windows by its providers and
// recomputes all derived view models synchronously. It never fetches on its
// own and holds no background resource beyond the clock subscription.
package engine

import (
	"sync"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/timeline"
	"github.com/rkuznets/coachcal/internal/view"
)

// Options configures an Engine.
type Options struct {
	// Now overrides the time source (tests). Nil means time.Now.
	Now func() time.Time
	// TickInterval for the reclassification clock. Zero means the default.
	TickInterval time.Duration
	// MinimumBlockMinutes for day layout. Zero means the default.
	MinimumBlockMinutes int
	// Observer receives recompute telemetry. Nil means no-op.
	Observer Observer
}

// Engine owns the derived calendar state. All derivations run in one atomic
// pass per tick or mutation: classification first, then grouping, then
// layout is computed on demand from the already-classified groups, so layout
// never sees a stale classification.
type Engine struct {
	mu sync.Mutex

	nowFn    func() time.Time
	minBlock int
	observer Observer

	clock      *view.Clock
	controller *view.Controller
	unsubTick  func()
	unsubView  func()

	// Caller-provided inputs, copied on the way in.
	sessions []domain.Session
	overlay  timeline.Overlay
	filter   map[string]bool

	// Derived state, replaced wholesale on every recompute.
	groups  []timeline.DayGroup
	skipped []timeline.SkippedSession
	lastNow time.Time

	onSessionActivated []func(domain.ClassifiedSession)
	onDateSelected     []func(time.Time)
	onViewRangeChanged []func(view.RangeChange)
}

// New creates an engine with an empty session window.
func New(opts Options) *Engine {
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	e := &Engine{
		nowFn:    nowFn,
		minBlock: opts.MinimumBlockMinutes,
		observer: observerOrNoop(opts.Observer),
		overlay:  timeline.NewOverlay(nil, nil, nil, nil),
	}
	e.clock = view.NewClock(opts.TickInterval, nowFn)
	e.controller = view.NewController(nowFn)
	e.unsubTick = e.clock.Subscribe(func(r view.Reading) {
		e.mu.Lock()
		e.recompute(r.Now)
		e.mu.Unlock()
	})
	e.unsubView = e.controller.Subscribe(func(rc view.RangeChange) {
		for _, fn := range e.onViewRangeChanged {
			fn(rc)
		}
	})
	e.recomputeNow()
	return e
}

// Start begins the periodic reclassification clock.
func (e *Engine) Start() {
	e.clock.Start()
}

// Close releases the clock subscription and stops the timer. The engine
// remains queryable afterwards but no longer reclassifies on its own.
func (e *Engine) Close() {
	e.clock.Stop()
	if e.unsubTick != nil {
		e.unsubTick()
		e.unsubTick = nil
	}
	if e.unsubView != nil {
		e.unsubView()
		e.unsubView = nil
	}
}

// Controller exposes the navigation controller. It is the only legal writer
// of the view state.
func (e *Engine) Controller() *view.Controller {
	return e.controller
}

// SetSessions replaces the session window and recomputes derived state.
func (e *Engine) SetSessions(sessions []domain.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sessions = make([]domain.Session, len(sessions))
	copy(e.sessions, sessions)
	e.recompute(e.nowFn())
}

// SetAvailability replaces the availability overlay from stored marks.
func (e *Engine) SetAvailability(marks []domain.AvailabilityMark) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overlay = timeline.NewOverlayFromMarks(marks)
}

// SetParticipantFilter restricts derived state to the given participants.
// An empty or nil set means no filtering. Filtered sessions are excluded
// from every derived structure, not merely hidden.
func (e *Engine) SetParticipantFilter(participantIDs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(participantIDs) == 0 {
		e.filter = nil
	} else {
		e.filter = make(map[string]bool, len(participantIDs))
		for _, id := range participantIDs {
			e.filter[id] = true
		}
	}
	e.recompute(e.nowFn())
}

// Refresh forces an immediate reclassification at the current instant.
func (e *Engine) Refresh() {
	e.clock.Tick()
}

// DayGroups returns the current date/participant groupings.
func (e *Engine) DayGroups() []timeline.DayGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groups
}

// GroupFor returns the day group for one date, if any sessions exist there.
func (e *Engine) GroupFor(date time.Time) (timeline.DayGroup, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groupForLocked(date)
}

// LayoutFor computes the day-grid layout for one date from the current
// classified groups. A date with no sessions yields an empty layout: an
// empty day is a valid state, not an error.
func (e *Engine) LayoutFor(date time.Time) timeline.DayLayout {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.groupForLocked(date)
	if !ok {
		return timeline.DayLayout{Date: timeline.Midnight(date)}
	}
	return timeline.BuildDayLayout(date, g.Sessions, e.minBlock)
}

// DecorationFor returns the availability decoration for a date.
func (e *Engine) DecorationFor(date time.Time) domain.Decoration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.overlay.Decoration(date)
}

// ViewState returns the current navigation state value.
func (e *Engine) ViewState() view.State {
	return e.controller.State()
}

// InvalidSessions reports the records excluded from the last recompute, for
// diagnostics: a day with some invalid sessions still renders the valid
// ones, and exposes this count upstream.
func (e *Engine) InvalidSessions() []timeline.SkippedSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipped
}

// OnSessionActivated registers a callback fired by ActivateSession.
func (e *Engine) OnSessionActivated(fn func(domain.ClassifiedSession)) {
	e.onSessionActivated = append(e.onSessionActivated, fn)
}

// OnDateSelected registers a callback fired by SelectDate.
func (e *Engine) OnDateSelected(fn func(time.Time)) {
	e.onDateSelected = append(e.onDateSelected, fn)
}

// OnViewRangeChanged registers a callback fired on every navigation
// transition, with the new visible range and granularity.
func (e *Engine) OnViewRangeChanged(fn func(view.RangeChange)) {
	e.onViewRangeChanged = append(e.onViewRangeChanged, fn)
}

// ActivateSession looks up a classified session by ID and notifies
// subscribers. ok is false when the ID is not in the current window.
func (e *Engine) ActivateSession(sessionID string) bool {
	e.mu.Lock()
	var found *domain.ClassifiedSession
	for _, g := range e.groups {
		for i := range g.Sessions {
			if g.Sessions[i].ID == sessionID {
				found = &g.Sessions[i]
				break
			}
		}
	}
	e.mu.Unlock()

	if found == nil {
		return false
	}
	for _, fn := range e.onSessionActivated {
		fn(*found)
	}
	return true
}

// SelectDate highlights a date without forcing day view (the mini-calendar
// selection path) and notifies date subscribers.
func (e *Engine) SelectDate(date time.Time) error {
	if err := e.controller.JumpToDate(date, false); err != nil {
		return err
	}
	for _, fn := range e.onDateSelected {
		fn(date)
	}
	return nil
}

// OpenDay jumps to a date and forces day view (the "open this day" path).
func (e *Engine) OpenDay(date time.Time) error {
	if err := e.controller.JumpToDate(date, true); err != nil {
		return err
	}
	for _, fn := range e.onDateSelected {
		fn(date)
	}
	return nil
}

func (e *Engine) recomputeNow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recompute(e.nowFn())
}

// recompute runs the full classification → grouping pipeline atomically.
// Callers hold e.mu.
func (e *Engine) recompute(now time.Time) {
	started := time.Now()

	input := e.sessions
	if e.filter != nil {
		input = make([]domain.Session, 0, len(e.sessions))
		for _, s := range e.sessions {
			if e.filter[s.ParticipantID] {
				input = append(input, s)
			}
		}
	}

	classified, skipped := timeline.ClassifyAll(now, input)
	e.groups = timeline.GroupByDate(classified)
	e.skipped = skipped
	e.lastNow = now

	for _, sk := range skipped {
		e.observer.ObserveSkipped(sk.SessionID, sk.Err)
	}
	e.observer.ObserveRecompute(RecomputeEvent{
		Now:        now,
		Total:      len(input),
		Classified: len(classified),
		Skipped:    len(skipped),
		Duration:   time.Since(started),
	})
}

func (e *Engine) groupForLocked(date time.Time) (timeline.DayGroup, bool) {
	key := timeline.DateKey(date)
	for _, g := range e.groups {
		if timeline.DateKey(g.Date) == key {
			return g, true
		}
	}
	return timeline.DayGroup{}, false
}
