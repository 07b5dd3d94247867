package timeline

import (
	"fmt"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// SkippedSession records a session excluded from classification because its
// date or times could not be resolved. Reported to the caller; never fatal.
type SkippedSession struct {
	SessionID string
	Err       error
}

// Classify derives the temporal classification of one session at the given
// instant. It is pure: identical (now, session) inputs always produce an
// identical result, which is what makes per-tick reclassification cheap.
func Classify(now time.Time, s domain.Session) (domain.ClassifiedSession, error) {
	sp, err := ResolveSpan(s.Date, s.StartTime, s.EndTime)
	if err != nil {
		return domain.ClassifiedSession{}, fmt.Errorf("%w: session %s: %v", ErrInvalidSessionTime, s.ID, err)
	}

	state := domain.TemporalPast
	switch {
	case now.Before(sp.Start):
		state = domain.TemporalUpcoming
	case now.Before(sp.End):
		state = domain.TemporalOngoing
	}

	return domain.ClassifiedSession{
		Session:            s,
		TemporalState:      state,
		IsCancelled:        s.LifecycleStatus == domain.LifecycleCancelled,
		NeedsConfirmation:  s.AssignmentStatus == domain.AssignmentPendingConfirmation,
		Start:              sp.Start,
		End:                sp.End,
		OverflowsToNextDay: sp.OverflowsToNextDay,
	}, nil
}

// ClassifyAll classifies every session in one atomic pass. Sessions with
// unresolvable times are skipped and collected, so one malformed record
// never blocks the rest of the batch. Input order is preserved.
func ClassifyAll(now time.Time, sessions []domain.Session) ([]domain.ClassifiedSession, []SkippedSession) {
	classified := make([]domain.ClassifiedSession, 0, len(sessions))
	var skipped []SkippedSession
	for _, s := range sessions {
		cs, err := Classify(now, s)
		if err != nil {
			skipped = append(skipped, SkippedSession{SessionID: s.ID, Err: err})
			continue
		}
		classified = append(classified, cs)
	}
	return classified, skipped
}
