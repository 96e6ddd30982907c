package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/screenwise/screenwise/internal/insights"
)

// ToCSV writes one "Total" row per recorded day followed by a row per
// tracked app on that day.
func ToCSV(records []insights.DailyRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "App ID", "App", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, r := range records {
		dateStr := r.Date.Format(insights.DateFormat)
		row := []string{
			dateStr,
			"",
			"Total",
			fmt.Sprintf("%d", r.TotalMinutes),
			insights.FormatMinutes(r.TotalMinutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}

		for _, a := range r.Apps {
			row := []string{
				dateStr,
				a.AppID,
				a.AppName,
				fmt.Sprintf("%d", a.TotalMinutes),
				insights.FormatMinutes(a.TotalMinutes),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
