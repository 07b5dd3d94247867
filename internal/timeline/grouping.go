package timeline

import (
	"sort"
	"time"

	"github.com/rkuznets/coachcal/internal/domain"
)

// ParticipantGroup holds one participant's sessions within a single day,
// in ascending start order.
type ParticipantGroup struct {
	ParticipantID   string
	ParticipantName string
	Sessions        []domain.ClassifiedSession
}

// DayGroup holds all sessions of one calendar date, both flat and grouped
// per participant. Participants appear in first-seen order, which is stable
// across recomputations so the rendered rows never jitter.
type DayGroup struct {
	Date         time.Time
	Sessions     []domain.ClassifiedSession
	Participants []ParticipantGroup
}

// GroupByDate groups classified sessions by calendar date, sorted ascending
// by (date, start instant). Sessions tying on both keys keep their original
// input order: the sort is stable and uses no secondary key.
func GroupByDate(sessions []domain.ClassifiedSession) []DayGroup {
	sorted := make([]domain.ClassifiedSession, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		da, db := Midnight(a.Date), Midnight(b.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return a.Start.Before(b.Start)
	})

	var groups []DayGroup
	index := make(map[string]int)
	for _, s := range sorted {
		key := DateKey(s.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: Midnight(s.Date)})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}

	for i := range groups {
		groups[i].Participants = GroupByParticipant(groups[i].Sessions)
	}
	return groups
}

// GroupByParticipant buckets one day's sessions per participant, preserving
// the first-seen order of participants and the input order of sessions
// within each bucket.
func GroupByParticipant(sessions []domain.ClassifiedSession) []ParticipantGroup {
	var groups []ParticipantGroup
	index := make(map[string]int)
	for _, s := range sessions {
		i, ok := index[s.ParticipantID]
		if !ok {
			i = len(groups)
			index[s.ParticipantID] = i
			groups = append(groups, ParticipantGroup{
				ParticipantID:   s.ParticipantID,
				ParticipantName: s.ParticipantName,
			})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}
