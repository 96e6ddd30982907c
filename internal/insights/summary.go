package insights

import (
	"math"
	"time"
)

// DayStat annotates a record's total with a display-ready date.
type DayStat struct {
	Date         time.Time `json:"date"`
	DateLabel    string    `json:"date_label"`
	TotalMinutes int       `json:"total_minutes"`
}

// Summary holds the derived statistics over a full record set. BestDay is
// the day with the least screen time, WorstDay the most. A nil
// WeekOverWeekPercent means "no signal" (the previous week had no recorded
// time), which is distinct from a true 0% change.
type Summary struct {
	AverageDailyMinutes     int      `json:"average_daily_minutes"`
	BestDay                 *DayStat `json:"best_day,omitempty"`
	WorstDay                *DayStat `json:"worst_day,omitempty"`
	WeekOverWeekPercent     *float64 `json:"week_over_week_percent"`
	FiveYearProjectionDays  int      `json:"five_year_projection_days"`
	FiftyYearProjectionDays int      `json:"fifty_year_projection_days"`
}

// Summarize computes the insight summary. Empty input yields the zero
// Summary, never an error. Ties for best/worst go to the first record in
// input order: the extremum is seeded with the first record and only strict
// comparisons replace it.
func Summarize(records []DailyRecord, clock Clock) Summary {
	if clock == nil {
		clock = SystemClock()
	}
	var s Summary
	if len(records) == 0 {
		return s
	}

	total := 0
	best, worst := records[0], records[0]
	for _, r := range records {
		total += r.TotalMinutes
		if r.TotalMinutes < best.TotalMinutes {
			best = r
		}
		if r.TotalMinutes > worst.TotalMinutes {
			worst = r
		}
	}

	avg := int(math.Round(float64(total) / float64(len(records))))
	s.AverageDailyMinutes = avg
	s.BestDay = dayStat(best)
	s.WorstDay = dayStat(worst)
	s.WeekOverWeekPercent = weekOverWeek(records, clock.Now())
	s.FiveYearProjectionDays = ProjectionDays(avg, 5)
	s.FiftyYearProjectionDays = ProjectionDays(avg, 50)
	return s
}

func dayStat(r DailyRecord) *DayStat {
	return &DayStat{
		Date:         DateOnly(r.Date),
		DateLabel:    DateOnly(r.Date).Format("Jan 2, 2006"),
		TotalMinutes: r.TotalMinutes,
	}
}

// weekOverWeek compares the sum of the current ISO week (Monday through
// Sunday containing now) with the immediately preceding week. Returns nil
// when the previous week's sum is zero.
func weekOverWeek(records []DailyRecord, now time.Time) *float64 {
	curStart := WeekStart(DateOnly(now))
	curEnd := curStart.AddDate(0, 0, 7)
	prevStart := curStart.AddDate(0, 0, -7)

	var cur, prev int
	for _, r := range records {
		d := DateOnly(r.Date)
		switch {
		case !d.Before(curStart) && d.Before(curEnd):
			cur += r.TotalMinutes
		case !d.Before(prevStart) && d.Before(curStart):
			prev += r.TotalMinutes
		}
	}
	if prev == 0 {
		return nil
	}
	pct := float64(cur-prev) / float64(prev) * 100
	return &pct
}

// ProjectionDays extrapolates an average of avgMinutes per day over the
// given number of years and converts the total to whole days. The division
// runs through hours first, so both steps truncate.
func ProjectionDays(avgMinutes, years int) int {
	totalMinutes := avgMinutes * 365 * years
	return totalMinutes / 60 / 24
}
