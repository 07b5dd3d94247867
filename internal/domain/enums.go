package domain

type LifecycleStatus string

const (
	LifecycleScheduled   LifecycleStatus = "scheduled"
	LifecycleCompleted   LifecycleStatus = "completed"
	LifecycleCancelled   LifecycleStatus = "cancelled"
	LifecycleNoShow      LifecycleStatus = "no_show"
	LifecycleRescheduled LifecycleStatus = "rescheduled"
)

// ValidLifecycleStatuses is the canonical set of accepted lifecycle strings.
var ValidLifecycleStatuses = map[string]bool{
	"scheduled": true, "completed": true, "cancelled": true,
	"no_show": true, "rescheduled": true,
}

type AssignmentStatus string

const (
	AssignmentNone                AssignmentStatus = ""
	AssignmentPendingConfirmation AssignmentStatus = "pending_confirmation"
)

// TemporalState is the mutually exclusive position of a session relative to
// the current instant. Exactly one state holds for any session at any time.
type TemporalState string

const (
	TemporalUpcoming TemporalState = "upcoming"
	TemporalOngoing  TemporalState = "ongoing"
	TemporalPast     TemporalState = "past"
)

// AvailabilityKind is a stored per-date trainer availability mark.
type AvailabilityKind string

const (
	AvailabilityAvailable       AvailabilityKind = "available"
	AvailabilityUnavailable     AvailabilityKind = "unavailable"
	AvailabilityAbsencePending  AvailabilityKind = "absence_pending"
	AvailabilityAbsenceApproved AvailabilityKind = "absence_approved"
)

// ValidAvailabilityKinds is the canonical set of accepted mark kind strings.
var ValidAvailabilityKinds = map[string]bool{
	"available": true, "unavailable": true,
	"absence_pending": true, "absence_approved": true,
}

// Decoration is the single display tag derived for a calendar date after
// reconciling all availability marks for that date.
type Decoration string

const (
	DecorationApprovedAbsence Decoration = "approved_absence"
	DecorationPendingAbsence  Decoration = "pending_absence"
	DecorationUnavailable     Decoration = "unavailable"
	DecorationAvailable       Decoration = "available"
	DecorationNone            Decoration = "none"
)

// Granularity is the calendar zoom level currently rendered.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)
