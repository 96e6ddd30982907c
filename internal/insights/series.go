package insights

import (
	"sort"
	"time"
)

// Bucket is one aggregation period with its summed minutes. Synthesized
// gap-fill buckets carry a zero total.
type Bucket struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Range        string `json:"range"`
	TotalMinutes int    `json:"total_minutes"`
	start        time.Time
}

// Start returns the first day of the bucket's period.
func (b Bucket) Start() time.Time { return b.start }

// Series is the chart-ready view of an aggregation: parallel label, value,
// and range slices, chronological, gap-filled from the earliest record's
// period through the current one.
type Series struct {
	Granularity Granularity `json:"granularity"`
	Labels      []string    `json:"labels"`
	Values      []int       `json:"values"`
	Ranges      []string    `json:"ranges"`
	Buckets     []Bucket    `json:"buckets"`
}

// Aggregate folds daily records into per-period totals. When appFilter is
// non-empty only that app's minutes count, and records without the app
// contribute zero, so an app that never appears still yields a full series
// of zeros. Empty input yields an empty series. Output depends only on the
// records and the clock, so identical calls produce identical results.
func Aggregate(records []DailyRecord, g Granularity, appFilter string, clock Clock) Series {
	if clock == nil {
		clock = SystemClock()
	}
	s := Series{Granularity: g}
	if len(records) == 0 {
		return s
	}

	type acc struct {
		info  BucketInfo
		total int
	}
	byKey := make(map[string]*acc, len(records))
	var minStart, maxStart time.Time

	for _, r := range records {
		info := Classify(r.Date, g)
		a, ok := byKey[info.Key]
		if !ok {
			a = &acc{info: info}
			byKey[info.Key] = a
		}
		if appFilter == "" {
			a.total += r.TotalMinutes
		} else {
			a.total += r.AppMinutes(appFilter)
		}
		if minStart.IsZero() || info.start.Before(minStart) {
			minStart = info.start
		}
		if info.start.After(maxStart) {
			maxStart = info.start
		}
	}

	// Gap-fill through the current period. A clock behind the data must not
	// truncate the series, so the end is whichever period is later.
	end := Classify(DateOnly(clock.Now()), g).start
	if maxStart.After(end) {
		end = maxStart
	}
	for start := minStart; !start.After(end); start = nextPeriod(start, g) {
		info := Classify(start, g)
		if _, ok := byKey[info.Key]; !ok {
			byKey[info.Key] = &acc{info: info}
		}
	}

	buckets := make([]Bucket, 0, len(byKey))
	for _, a := range byKey {
		buckets = append(buckets, Bucket{
			Key:          a.info.Key,
			Label:        a.info.Label,
			Range:        a.info.Range,
			TotalMinutes: a.total,
			start:        a.info.start,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].start.Before(buckets[j].start)
	})

	s.Buckets = buckets
	s.Labels = make([]string, len(buckets))
	s.Values = make([]int, len(buckets))
	s.Ranges = make([]string, len(buckets))
	for i, b := range buckets {
		s.Labels[i] = b.Label
		s.Values[i] = b.TotalMinutes
		s.Ranges[i] = b.Range
	}
	return s
}
