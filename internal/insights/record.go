// Package insights turns raw per-day screen-time records into chart-ready
// series, derived statistics, and streak data. Everything here is a pure
// function over its inputs; the only outside dependency is an injectable
// Clock.
package insights

import (
	"fmt"
	"sort"
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// AppUsage is the tracked time of a single app on a single day. Tracked
// apps are a subset: per-app minutes need not sum to the day's total.
type AppUsage struct {
	AppID        string `json:"app_id"`
	AppName      string `json:"app_name"`
	IconRef      string `json:"icon,omitempty"`
	TotalMinutes int    `json:"total_minutes"`
}

// DailyRecord is one user's screen time for one calendar date. There is at
// most one record per date; records are never mutated after they are read.
type DailyRecord struct {
	Date         time.Time  `json:"date"`
	TotalMinutes int        `json:"total_minutes"`
	Apps         []AppUsage `json:"apps,omitempty"`
}

// AppMinutes returns the minutes recorded for appID on this day, 0 when the
// app was not tracked that day.
func (r DailyRecord) AppMinutes(appID string) int {
	for _, a := range r.Apps {
		if a.AppID == appID {
			return a.TotalMinutes
		}
	}
	return 0
}

// ParseDate parses a strict YYYY-MM-DD date into a date-only UTC value.
// Any other shape is an error, never coerced.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortByDate sorts records ascending by date, in place. Best/worst-day
// tie-breaks are first-in-input-order, so callers that need stable results
// across runs should sort before summarizing.
func SortByDate(records []DailyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}
