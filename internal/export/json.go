package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/screenwise/screenwise/internal/insights"
)

type jsonExport struct {
	ExportedAt string            `json:"exported_at"`
	Count      int               `json:"count"`
	Summary    *insights.Summary `json:"summary,omitempty"`
	Records    []jsonRecord      `json:"records"`
}

type jsonRecord struct {
	Date         string    `json:"date"`
	TotalMinutes int       `json:"total_minutes"`
	Duration     string    `json:"duration"`
	Apps         []jsonApp `json:"apps,omitempty"`
}

type jsonApp struct {
	AppID        string `json:"app_id"`
	AppName      string `json:"app_name"`
	Icon         string `json:"icon,omitempty"`
	TotalMinutes int    `json:"total_minutes"`
	Duration     string `json:"duration"`
}

// ToJSON writes the full record set plus the derived summary. A nil
// summary pointer is omitted from the payload.
func ToJSON(records []insights.DailyRecord, summary *insights.Summary, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
		Summary:    summary,
	}

	for _, r := range records {
		jr := jsonRecord{
			Date:         r.Date.Format(insights.DateFormat),
			TotalMinutes: r.TotalMinutes,
			Duration:     insights.FormatMinutes(r.TotalMinutes),
		}
		for _, a := range r.Apps {
			jr.Apps = append(jr.Apps, jsonApp{
				AppID:        a.AppID,
				AppName:      a.AppName,
				Icon:         a.IconRef,
				TotalMinutes: a.TotalMinutes,
				Duration:     insights.FormatMinutes(a.TotalMinutes),
			})
		}
		export.Records = append(export.Records, jr)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
