// Package importer converts ICS calendar payloads into booking sessions.
// Recurring events are expanded within a bounded window; events that cannot
// be mapped are skipped and reported, never fatal to the batch.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/rkuznets/coachcal/internal/domain"
)

const defaultMaxOccurrencesPerEvent = 1000

// Options controls an import run.
type Options struct {
	// ParticipantID and ParticipantName are assigned to every imported
	// session; an ATTENDEE common name on the event overrides the name.
	ParticipantID   string
	ParticipantName string

	// Location is the timezone sessions are normalized into. Nil means
	// time.Local.
	Location *time.Location

	// RangeStart / RangeEnd bound recurrence expansion (inclusive).
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrencesPerEvent caps expansion of a single recurring event.
	// Zero means the default.
	MaxOccurrencesPerEvent int
}

// SkippedEvent records a VEVENT that could not be imported.
type SkippedEvent struct {
	UID    string
	Reason string
}

// Result is the outcome of one import run.
type Result struct {
	Sessions []domain.Session
	Skipped  []SkippedEvent
}

// Import parses an ICS payload and maps its events to sessions.
func Import(body []byte, opts Options) (Result, error) {
	var result Result
	if len(body) == 0 {
		return result, errors.New("empty ICS body")
	}
	if opts.ParticipantID == "" {
		return result, errors.New("participant id is required")
	}
	if opts.RangeEnd.Before(opts.RangeStart) {
		return result, errors.New("import range end is before range start")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxOccurrencesPerEvent <= 0 {
		opts.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("parsing ICS: %w", err)
	}

	for _, ve := range cal.Events() {
		uid := propValue(ve, ical.ComponentPropertyUniqueId)
		starts, end, skip := resolveOccurrences(ve, opts)
		if skip != "" {
			result.Skipped = append(result.Skipped, SkippedEvent{UID: uid, Reason: skip})
			continue
		}
		duration := end.Sub(starts[0])
		for _, occStart := range starts {
			result.Sessions = append(result.Sessions,
				sessionFromEvent(ve, occStart, occStart.Add(duration), opts))
		}
	}
	return result, nil
}

// resolveOccurrences returns the occurrence start instants of an event
// within the import range, along with the end of the first occurrence. A
// non-empty skip reason means the event is excluded.
func resolveOccurrences(ve *ical.VEvent, opts Options) (starts []time.Time, end time.Time, skip string) {
	if propValue(ve, ical.ComponentPropertyUniqueId) == "" {
		return nil, time.Time{}, "missing UID"
	}

	if isAllDay(ve) {
		return nil, time.Time{}, "all-day events do not map to time-boxed sessions"
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, time.Time{}, "missing or unparsable DTSTART"
	}
	end, err = ve.GetEndAt()
	if err != nil {
		return nil, time.Time{}, "missing or unparsable DTEND"
	}
	// Session times are clock strings, so a span must stay under a full
	// day or the overnight rule would shorten it on the way back out.
	if end.Sub(start) >= 24*time.Hour {
		return nil, time.Time{}, "event spans 24 hours or more"
	}

	rawRRule := propValue(ve, ical.ComponentPropertyRrule)
	if rawRRule == "" {
		if start.After(opts.RangeEnd) || end.Before(opts.RangeStart) {
			return nil, time.Time{}, "outside import range"
		}
		return []time.Time{start}, end, ""
	}

	r, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		return nil, time.Time{}, "unparsable RRULE"
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range exDates(ve) {
		set.ExDate(ex.In(start.Location()))
	}

	occ := set.Between(opts.RangeStart.In(start.Location()), opts.RangeEnd.In(start.Location()), true)
	if len(occ) == 0 {
		return nil, time.Time{}, "no occurrences in import range"
	}
	if len(occ) > opts.MaxOccurrencesPerEvent {
		occ = occ[:opts.MaxOccurrencesPerEvent]
	}
	// End of the first occurrence carries the duration for all of them.
	return occ, occ[0].Add(end.Sub(start)), ""
}

func sessionFromEvent(ve *ical.VEvent, start, end time.Time, opts Options) domain.Session {
	start = start.In(opts.Location)
	end = end.In(opts.Location)

	name := opts.ParticipantName
	if cn := attendeeName(ve); cn != "" {
		name = cn
	}

	lifecycle := domain.LifecycleScheduled
	if strings.EqualFold(propValue(ve, ical.ComponentPropertyStatus), "CANCELLED") {
		lifecycle = domain.LifecycleCancelled
	}

	return domain.Session{
		ID:              uuid.NewString(),
		ParticipantID:   opts.ParticipantID,
		ParticipantName: name,
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, opts.Location),
		StartTime:       start.Format("15:04"),
		EndTime:         end.Format("15:04"),
		Activities:      activities(ve),
		LifecycleStatus: lifecycle,
		CreatedAt:       time.Now().UTC(),
	}
}

// activities maps CATEGORIES entries, falling back to the summary.
func activities(ve *ical.VEvent) []string {
	if cats := propValue(ve, ical.ComponentPropertyCategories); cats != "" {
		var out []string
		for _, c := range strings.Split(cats, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
		return out
	}
	if summary := propValue(ve, ical.ComponentPropertySummary); summary != "" {
		return []string{summary}
	}
	return nil
}

func attendeeName(ve *ical.VEvent) string {
	p := ve.GetProperty(ical.ComponentPropertyAttendee)
	if p == nil || p.ICalParameters == nil {
		return ""
	}
	if cns, ok := p.ICalParameters["CN"]; ok && len(cns) > 0 {
		return cns[0]
	}
	return ""
}

func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if p.ICalParameters != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

func exDates(ve *ical.VEvent) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSTime parses the basic DATE / DATE-TIME / UTC forms used by EXDATE.
func parseICSTime(v string) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}
