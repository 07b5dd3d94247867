package timeline

import (
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// Overlay reconciles the four independent availability date-sets into one
// decoration per date. It is a pure lookup with no session awareness: when a
// date also carries sessions, the UI decides which indicator wins, not this
// overlay.
type Overlay struct {
	approvedAbsence map[string]bool
	pendingAbsence  map[string]bool
	unavailable     map[string]bool
	available       map[string]bool
}

// NewOverlay builds an overlay from explicit date sets.
func NewOverlay(approvedAbsence, pendingAbsence, unavailable, available []time.Time) Overlay {
	return Overlay{
		approvedAbsence: toDateSet(approvedAbsence),
		pendingAbsence:  toDateSet(pendingAbsence),
		unavailable:     toDateSet(unavailable),
		available:       toDateSet(available),
	}
}

// NewOverlayFromMarks builds an overlay from stored availability marks.
func NewOverlayFromMarks(marks []domain.AvailabilityMark) Overlay {
	o := Overlay{
		approvedAbsence: make(map[string]bool),
		pendingAbsence:  make(map[string]bool),
		unavailable:     make(map[string]bool),
		available:       make(map[string]bool),
	}
	for _, m := range marks {
		key := DateKey(m.Date)
		switch m.Kind {
		case domain.AvailabilityAbsenceApproved:
			o.approvedAbsence[key] = true
		case domain.AvailabilityAbsencePending:
			o.pendingAbsence[key] = true
		case domain.AvailabilityUnavailable:
			o.unavailable[key] = true
		case domain.AvailabilityAvailable:
			o.available[key] = true
		}
	}
	return o
}

// Decoration returns the single tag for a date using the fixed precedence
// approvedAbsence > pendingAbsence > unavailable > available > none.
func (o Overlay) Decoration(date time.Time) domain.Decoration {
	key := DateKey(date)
	switch {
	case o.approvedAbsence[key]:
		return domain.DecorationApprovedAbsence
	case o.pendingAbsence[key]:
		return domain.DecorationPendingAbsence
	case o.unavailable[key]:
		return domain.DecorationUnavailable
	case o.available[key]:
		return domain.DecorationAvailable
	default:
		return domain.DecorationNone
	}
}

func toDateSet(dates []time.Time) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[DateKey(d)] = true
	}
	return set
}
