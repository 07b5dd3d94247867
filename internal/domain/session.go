package domain

import "time"

// Session is one scheduled activity block for one participant. Date carries
// only the calendar day (midnight in the session's timezone); StartTime and
// EndTime are wall-clock strings ("HH:MM" or "HH:MM:SS"). EndTime may be
// numerically at or before StartTime, which means the session runs past
// midnight into the following day.
type Session struct {
	ID               string
	ParticipantID    string
	ParticipantName  string
	Date             time.Time
	StartTime        string
	EndTime          string
	Activities       []string
	LifecycleStatus  LifecycleStatus
	AssignmentStatus AssignmentStatus
	CreatedAt        time.Time
}

// ClassifiedSession is a Session plus its derived temporal classification.
// TemporalState, IsCancelled and NeedsConfirmation are orthogonal facts:
// a cancelled session can simultaneously be past.
type ClassifiedSession struct {
	Session
	TemporalState      TemporalState
	IsCancelled        bool
	NeedsConfirmation  bool
	Start              time.Time
	End                time.Time
	OverflowsToNextDay bool
}

// AvailabilityMark is one stored per-date availability record.
type AvailabilityMark struct {
	ID        string
	Date      time.Time
	Kind      AvailabilityKind
	Note      string
	CreatedAt time.Time
}
