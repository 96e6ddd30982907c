package tui

import (
	"fmt"

	"github.com/screenwise/screenwise/internal/insights"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTrends
	viewInsights
	viewHeatmap
	viewSettings
)

var viewNames = []string{"Dashboard", "Trends", "Insights", "Heatmap", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatHours renders fractional hours for heatmap legends.
func formatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// limitRatio is today's minutes as a fraction of the daily limit, capped
// at 1 for rendering. A zero limit reads as "no limit set".
func limitRatio(todayMinutes, limitMinutes int) float64 {
	if limitMinutes <= 0 {
		return 0
	}
	r := float64(todayMinutes) / float64(limitMinutes)
	if r > 1 {
		r = 1
	}
	return r
}

// progressBar renders a fixed-width block bar for a 0..1 ratio.
func progressBar(ratio float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func formatMinutes(m int) string {
	return insights.FormatMinutes(m)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
