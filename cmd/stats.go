package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screenwise/screenwise/internal/insights"
)

var (
	statsGranularity string
	statsApp         string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the aggregated series and insight summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := insights.Granularity(statsGranularity)
		if !g.Valid() {
			return fmt.Errorf("invalid granularity %q (want week, month, or year)", statsGranularity)
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
		if len(records) == 0 {
			fmt.Println("No screen time recorded yet. Try: screenwise log --minutes 30")
			return nil
		}

		clock := insights.SystemClock()
		series := insights.Aggregate(records, g, statsApp, clock)
		summary := insights.Summarize(records, clock)
		window := insights.HeatmapWindow(records, viper.GetInt("heatmap_window"), clock)

		if statsApp != "" {
			fmt.Printf("Screen time by %s (app: %s)\n\n", g, statsApp)
		} else {
			fmt.Printf("Screen time by %s\n\n", g)
		}
		for i := range series.Labels {
			fmt.Printf("  %-10s %-26s %s\n", series.Labels[i], series.Ranges[i], insights.FormatMinutes(series.Values[i]))
		}

		fmt.Printf("\nDaily average: %s\n", insights.FormatMinutes(summary.AverageDailyMinutes))
		if summary.BestDay != nil {
			fmt.Printf("Best day:      %s (%s)\n", summary.BestDay.DateLabel, insights.FormatMinutes(summary.BestDay.TotalMinutes))
		}
		if summary.WorstDay != nil {
			fmt.Printf("Worst day:     %s (%s)\n", summary.WorstDay.DateLabel, insights.FormatMinutes(summary.WorstDay.TotalMinutes))
		}
		if summary.WeekOverWeekPercent != nil {
			fmt.Printf("Week over week: %+.1f%%\n", *summary.WeekOverWeekPercent)
		} else {
			fmt.Println("Week over week: no data")
		}
		fmt.Printf("At this pace:  %d days in 5 years, %d days in 50 years\n",
			summary.FiveYearProjectionDays, summary.FiftyYearProjectionDays)
		fmt.Printf("Longest streak: %d days\n", insights.LongestStreak(window))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsGranularity, "granularity", "g", "week", "bucket size: week, month, or year")
	statsCmd.Flags().StringVar(&statsApp, "app", "", "filter to a single app id")
}
