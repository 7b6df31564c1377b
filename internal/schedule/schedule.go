// Package schedule implements recurrence arithmetic for HomeShare's
// recurring templates: advancing an occurrence cursor and catching up
// every missed period in one deterministic call.
//
// Calendar days are ISO "2006-01-02" strings throughout, so lexical
// comparison is chronological comparison. "Today" is always passed in by
// the caller; the package never reads a clock, which keeps it fully
// deterministic and testable.
package schedule

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used across HomeShare.
const DayLayout = "2006-01-02"

// Frequency is the cadence unit of a recurring template.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// DefaultMaxBatch bounds how many missed occurrences one DueOccurrences
// call will catch up, so a template untouched for years cannot generate
// an unbounded burst.
const DefaultMaxBatch = 12

// Advance returns the occurrence date that follows day: interval days,
// interval weeks, or interval calendar months (standard calendar
// rollover, not fixed 30-day steps). An interval below 1 is treated as 1.
func Advance(day string, freq Frequency, interval int) (string, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", day, err)
	}
	if interval < 1 {
		interval = 1
	}

	switch freq {
	case Daily:
		t = t.AddDate(0, 0, interval)
	case Weekly:
		t = t.AddDate(0, 0, interval*7)
	case Monthly:
		t = t.AddDate(0, interval, 0)
	default:
		return "", fmt.Errorf("unknown frequency %q", freq)
	}
	return t.Format(DayLayout), nil
}

// DueRequest describes one template's cursor state for DueOccurrences.
type DueRequest struct {
	// NextOccurrence is the template's cursor: the first occurrence
	// that has not been generated yet.
	NextOccurrence string

	// EndDate is the last day an occurrence may fall on. Empty means
	// the template never ends.
	EndDate string

	Frequency Frequency
	Interval  int

	// Today is the caller's current calendar day.
	Today string

	// MaxBatch caps the occurrences returned; 0 means DefaultMaxBatch.
	MaxBatch int
}

// DueResult is the outcome of one catch-up pass.
type DueResult struct {
	// Occurrences are the dates due for generation, oldest first.
	Occurrences []string

	// NextOccurrence is the advanced cursor to persist.
	NextOccurrence string

	// Active is false once the cursor has moved past the end date;
	// a template can produce its final occurrence and retire in the
	// same call.
	Active bool
}

// DueOccurrences accumulates every occurrence with cursor <= today (and
// <= end date, when one is set), advancing the cursor each step and
// stopping after MaxBatch occurrences. It is idempotent in effect: one
// call over a large gap and repeated single-period calls land on the
// same cursor and the same occurrence list.
func DueOccurrences(req DueRequest) (DueResult, error) {
	if _, err := time.Parse(DayLayout, req.NextOccurrence); err != nil {
		return DueResult{}, fmt.Errorf("parse next occurrence %q: %w", req.NextOccurrence, err)
	}
	if _, err := time.Parse(DayLayout, req.Today); err != nil {
		return DueResult{}, fmt.Errorf("parse today %q: %w", req.Today, err)
	}
	if req.EndDate != "" {
		if _, err := time.Parse(DayLayout, req.EndDate); err != nil {
			return DueResult{}, fmt.Errorf("parse end date %q: %w", req.EndDate, err)
		}
	}
	switch req.Frequency {
	case Daily, Weekly, Monthly:
	default:
		return DueResult{}, fmt.Errorf("unknown frequency %q", req.Frequency)
	}

	maxBatch := req.MaxBatch
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}

	cursor := req.NextOccurrence
	var occurrences []string
	for cursor <= req.Today && (req.EndDate == "" || cursor <= req.EndDate) {
		occurrences = append(occurrences, cursor)
		next, err := Advance(cursor, req.Frequency, req.Interval)
		if err != nil {
			return DueResult{}, err
		}
		cursor = next
		if len(occurrences) >= maxBatch {
			break
		}
	}

	active := req.EndDate == "" || cursor <= req.EndDate
	return DueResult{
		Occurrences:    occurrences,
		NextOccurrence: cursor,
		Active:         active,
	}, nil
}
