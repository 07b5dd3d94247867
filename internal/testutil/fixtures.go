package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/rkuznets/coachcal/internal/domain"
)

// NewSession builds a scheduled session on the given day with a fresh ID.
func NewSession(participantID string, date time.Time, start, end string) domain.Session {
	return domain.Session{
		ID:              uuid.NewString(),
		ParticipantID:   participantID,
		ParticipantName: "Participant " + participantID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		Activities:      []string{"warmup", "drills"},
		LifecycleStatus: domain.LifecycleScheduled,
		CreatedAt:       time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewMark builds an availability mark for the given day with a fresh ID.
func NewMark(date time.Time, kind domain.AvailabilityKind) domain.AvailabilityMark {
	return domain.AvailabilityMark{
		ID:        uuid.NewString(),
		Date:      date,
		Kind:      kind,
		CreatedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
}
