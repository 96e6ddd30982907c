package insights

import (
	"fmt"
	"time"
)

// Granularity selects the bucket resolution for an aggregated series.
type Granularity string

const (
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case ByWeek, ByMonth, ByYear:
		return true
	}
	return false
}

// BucketInfo identifies the period a date falls in at a given granularity.
// Key sorts lexicographically in chronological order; Label and Range are
// display-ready.
type BucketInfo struct {
	Key   string
	Label string
	Range string
	start time.Time
}

// Start returns the first day of the period.
func (b BucketInfo) Start() time.Time { return b.start }

// Classify maps a date to its week, month, or year bucket. Weeks are ISO
// weeks (Monday start) keyed by ISO week-year, so a date in early January
// can land in the previous year's final week.
func Classify(date time.Time, g Granularity) BucketInfo {
	date = DateOnly(date)

	switch g {
	case ByWeek:
		start := WeekStart(date)
		year, week := date.ISOWeek()
		end := start.AddDate(0, 0, 6)
		var rng string
		if start.Month() == end.Month() {
			rng = fmt.Sprintf("%s %d - %d", start.Month(), start.Day(), end.Day())
		} else {
			rng = fmt.Sprintf("%s %d - %s %d", start.Month(), start.Day(), end.Month(), end.Day())
		}
		return BucketInfo{
			Key:   fmt.Sprintf("%04d-W%02d", year, week),
			Label: fmt.Sprintf("Week %d", week),
			Range: rng,
			start: start,
		}

	case ByMonth:
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		return BucketInfo{
			Key:   start.Format("2006-01"),
			Label: start.Format("Jan"),
			Range: fmt.Sprintf("%s %d", start.Month(), start.Year()),
			start: start,
		}

	default: // ByYear
		start := time.Date(date.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		y := start.Format("2006")
		return BucketInfo{Key: y, Label: y, Range: y, start: start}
	}
}

// WeekStart returns the Monday of the ISO week containing date.
func WeekStart(date time.Time) time.Time {
	date = DateOnly(date)
	wd := int(date.Weekday())
	if wd == 0 {
		wd = 7
	}
	return date.AddDate(0, 0, 1-wd)
}

// MonthOfWeek returns the month a week bucket is attributed to: the month
// containing its Monday. Month-scoped views drop weeks whose Monday falls
// in a neighboring month even when most of the week overlaps the scoped
// month. Kept as the historical behavior so totals stay comparable.
func MonthOfWeek(date time.Time) (int, time.Month) {
	start := WeekStart(date)
	return start.Year(), start.Month()
}

// nextPeriod advances a period start by one step at granularity g.
func nextPeriod(start time.Time, g Granularity) time.Time {
	switch g {
	case ByWeek:
		return start.AddDate(0, 0, 7)
	case ByMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}

// PeriodsBetween counts whole period steps from the period containing from
// to the period containing to. Zero when both fall in the same period,
// negative never (from after to counts as zero).
func PeriodsBetween(from, to time.Time, g Granularity) int {
	start := Classify(from, g).start
	end := Classify(to, g).start
	n := 0
	for start.Before(end) {
		start = nextPeriod(start, g)
		n++
	}
	return n
}
