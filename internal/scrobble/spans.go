package scrobble

import (
	"sort"
	"time"
)

// TimeSpan is a half-open time range: From inclusive, To exclusive.
type TimeSpan struct {
	From time.Time
	To   time.Time
}

// Duration returns the span length.
func (s TimeSpan) Duration() time.Duration { return s.To.Sub(s.From) }

// MissingSpans computes the parts of [epoch zero, until) that no archive on
// disk covers yet. Overlapping and adjacent archives are merged first.
func MissingSpans(files []ArchiveFile, until time.Time) []TimeSpan {
	start := time.Unix(0, 0).UTC()
	if !until.After(start) {
		return nil
	}

	covered := make([]TimeSpan, 0, len(files))
	for _, file := range files {
		if !file.To.After(file.From) {
			continue
		}
		covered = append(covered, TimeSpan{From: file.From, To: file.To})
	}
	sort.Slice(covered, func(i, j int) bool { return covered[i].From.Before(covered[j].From) })

	var merged []TimeSpan
	for _, span := range covered {
		if len(merged) > 0 && !span.From.After(merged[len(merged)-1].To) {
			if span.To.After(merged[len(merged)-1].To) {
				merged[len(merged)-1].To = span.To
			}
			continue
		}
		merged = append(merged, span)
	}

	var missing []TimeSpan
	cursor := start
	for _, span := range merged {
		if cursor.Before(span.From) {
			end := span.From
			if end.After(until) {
				end = until
			}
			if end.After(cursor) {
				missing = append(missing, TimeSpan{From: cursor, To: end})
			}
		}
		if span.To.After(cursor) {
			cursor = span.To
		}
		if !cursor.Before(until) {
			return missing
		}
	}
	if cursor.Before(until) {
		missing = append(missing, TimeSpan{From: cursor, To: until})
	}
	return missing
}
