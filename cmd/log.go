package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenwise/screenwise/internal/insights"
)

var (
	logApp     string
	logAppID   string
	logIcon    string
	logMinutes int
	logDate    string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record screen time for a day",
	Example: `  screenwise log --minutes 90
  screenwise log --app Safari --minutes 45 --date 2024-03-07`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logMinutes <= 0 {
			return fmt.Errorf("--minutes must be positive, got %d", logMinutes)
		}

		date := insights.DateOnly(time.Now().UTC())
		if logDate != "" {
			var err error
			date, err = insights.ParseDate(logDate)
			if err != nil {
				return err
			}
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if logApp == "" {
			if err := s.AddTime(date, logMinutes); err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s\n", insights.FormatMinutes(logMinutes), date.Format(insights.DateFormat))
			return nil
		}

		appID := logAppID
		if appID == "" {
			appID = slugify(logApp)
		}
		if err := s.LogAppTime(date, appID, logApp, logIcon, logMinutes); err != nil {
			return err
		}
		fmt.Printf("Logged %s on %s (%s)\n", insights.FormatMinutes(logMinutes), date.Format(insights.DateFormat), logApp)
		return nil
	},
}

// slugify derives a stable app id from a display name when none is given.
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logApp, "app", "", "app display name (omit to log untracked time)")
	logCmd.Flags().StringVar(&logAppID, "app-id", "", "stable app identifier (default: slug of --app)")
	logCmd.Flags().StringVar(&logIcon, "icon", "", "app icon reference")
	logCmd.Flags().IntVar(&logMinutes, "minutes", 0, "minutes of screen time to record")
	logCmd.Flags().StringVar(&logDate, "date", "", "calendar date YYYY-MM-DD (default: today)")
	logCmd.MarkFlagRequired("minutes")
}
