package insights

import "fmt"

// FormatMinutes renders a minute count for display: "45m", "2h 15m", or
// "3d 4h". Minutes are dropped once the total crosses a full day.
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 60
	minutes := total % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dd %dh", hours/24, hours%24)
}
