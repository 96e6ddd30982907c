package insights

import "time"

// DefaultHeatmapWindow is the trailing window length in days.
const DefaultHeatmapWindow = 90

// HeatmapPoint is one day of the trailing activity window. Count is hours,
// fractional.
type HeatmapPoint struct {
	Date  time.Time `json:"date"`
	Count float64   `json:"count"`
}

// HeatmapWindow builds the zero-filled trailing window of days days ending
// on the clock's today, ascending by date. Days without a record get a
// zero Count. days <= 0 falls back to DefaultHeatmapWindow.
func HeatmapWindow(records []DailyRecord, days int, clock Clock) []HeatmapPoint {
	if clock == nil {
		clock = SystemClock()
	}
	if days <= 0 {
		days = DefaultHeatmapWindow
	}
	end := DateOnly(clock.Now())
	start := end.AddDate(0, 0, -(days - 1))

	minutesByDate := make(map[string]int, len(records))
	for _, r := range records {
		minutesByDate[DateOnly(r.Date).Format(DateFormat)] = r.TotalMinutes
	}

	points := make([]HeatmapPoint, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		points = append(points, HeatmapPoint{
			Date:  d,
			Count: float64(minutesByDate[d.Format(DateFormat)]) / 60,
		})
	}
	return points
}

// LongestStreak returns the longest run of consecutive calendar days with
// nonzero activity. The window is expected to be contiguous and ascending
// (HeatmapWindow output always is); a nonzero day that does not directly
// follow the previous point still starts a fresh run of 1 rather than
// extending the old one.
func LongestStreak(window []HeatmapPoint) int {
	var current, longest int
	var prev time.Time
	for i, p := range window {
		switch {
		case p.Count <= 0:
			current = 0
		case i > 0 && !DateOnly(p.Date).Equal(DateOnly(prev).AddDate(0, 0, 1)):
			current = 1
		default:
			current++
		}
		if current > longest {
			longest = current
		}
		prev = p.Date
	}
	return longest
}

// CurrentStreak returns the run of nonzero days ending at the window's last
// day. A zero final day means the streak is broken and the result is 0.
func CurrentStreak(window []HeatmapPoint) int {
	n := 0
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Count <= 0 {
			break
		}
		n++
	}
	return n
}
