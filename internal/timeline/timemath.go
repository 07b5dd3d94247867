// Package timeline derives calendar view models from raw booking sessions:
// temporal classification, date/participant grouping, day-grid layout and
// availability decorations. Everything in this package is pure; callers pass
// an explicit "now" where the current instant matters.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrParse indicates a time-of-day string is not HH:MM or HH:MM:SS.
	ErrParse = errors.New("unparsable time of day")

	// ErrInvalidSessionTime indicates a session whose date or times cannot
	// be resolved to instants. Such sessions are excluded from derived
	// output, never fatal to a batch.
	ErrInvalidSessionTime = errors.New("invalid session time")
)

// Span is a resolved absolute session interval. End is always after Start:
// when the raw end time-of-day is numerically at or before the start, the
// end is reinterpreted on the following calendar day and OverflowsToNextDay
// is set. Classification and layout must both go through this rule.
type Span struct {
	Start              time.Time
	End                time.Time
	OverflowsToNextDay bool
}

// ParseClockTime parses "HH:MM" or "HH:MM:SS" into hour/minute/second.
func ParseClockTime(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || p == "" {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrParse, s)
		}
		nums[i] = n
	}
	hour, minute = nums[0], nums[1]
	if len(nums) == 3 {
		second = nums[2]
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return hour, minute, second, nil
}

// ToInstant combines a calendar date with a time-of-day string into an
// absolute instant in the date's location.
func ToInstant(date time.Time, timeOfDay string) (time.Time, error) {
	h, m, s, err := ParseClockTime(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, date.Location()), nil
}

// ResolveSpan resolves a session's start and end times against its date,
// applying the overnight rule: a naive end at or before the start means the
// session ends at that time-of-day on the next calendar day.
func ResolveSpan(date time.Time, startTime, endTime string) (Span, error) {
	start, err := ToInstant(date, startTime)
	if err != nil {
		return Span{}, fmt.Errorf("start: %w", err)
	}
	end, err := ToInstant(date, endTime)
	if err != nil {
		return Span{}, fmt.Errorf("end: %w", err)
	}
	sp := Span{Start: start, End: end}
	if !end.After(start) {
		sp.End = end.AddDate(0, 0, 1)
		sp.OverflowsToNextDay = true
	}
	return sp, nil
}

// DurationMinutes returns the span length rounded to the nearest minute.
// Never negative given the overnight rule in ResolveSpan.
func DurationMinutes(sp Span) int {
	return int(math.Round(sp.End.Sub(sp.Start).Minutes()))
}

// Midnight truncates an instant to 00:00 of its calendar day, preserving
// the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats a date as the canonical YYYY-MM-DD grouping key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MinuteOfDay returns minutes elapsed since midnight of t's calendar day.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
