// Package calendar parses and renders the calendar days exercises are logged on.
//
// A day is represented as a time.Time at midnight UTC. Keeping every day in
// one location makes days comparable with Before/After/Equal and lets the
// store keep them as sortable "YYYY-MM-DD" text.
package calendar

import (
	"errors"
	"strings"
	"time"
)

const (
	// StoreLayout is how days are persisted. Lexical order equals date order.
	StoreLayout = "2006-01-02"

	// DisplayLayout renders days the way clients expect, e.g. "Fri Mar 01 2024".
	DisplayLayout = "Mon Jan 02 2006"
)

// ErrInvalidDate is returned by Parse when no accepted layout matches.
var ErrInvalidDate = errors.New("calendar: invalid date")

// layouts are tried in order. Numeric month/day elements ("1", "2") also
// accept zero-padded input, so "2024-3-1" and "2024-03-01" both parse.
var layouts = []string{
	"2006-1-2",
	time.RFC3339Nano,
	"2006-1-2T15:04:05",
	"2006-1-2T15:04",
	"2006-1-2 15:04:05",
	"2006/1/2",
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Parse reads a client-supplied date. When the input carries a time and an
// offset, the calendar day is the one written in the input, not the UTC day.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Day truncates t to its calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders a day with DisplayLayout.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}
