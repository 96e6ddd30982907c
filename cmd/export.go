package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenwise/screenwise/internal/export"
	"github.com/screenwise/screenwise/internal/insights"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records to CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "csv" && exportFormat != "json" {
			return fmt.Errorf("invalid format %q (want csv or json)", exportFormat)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.ListRecords(time.Time{}, time.Time{})
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			dateStr := time.Now().Format(insights.DateFormat)
			path = filepath.Join(home, fmt.Sprintf("screenwise-export-%s.%s", dateStr, exportFormat))
		}

		if exportFormat == "csv" {
			err = export.ToCSV(records, path)
		} else {
			summary := insights.Summarize(records, insights.SystemClock())
			err = export.ToJSON(records, &summary, path)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d records to %s\n", len(records), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: ~/screenwise-export-<date>.<ext>)")
}
