package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/screenwise/screenwise/internal/insights"
	"github.com/screenwise/screenwise/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	clock  insights.Clock
	width  int
	height int

	todayTotal    int
	limitMinutes  int
	currentStreak int
	longestStreak int
	todayApps     []insights.AppUsage
	recent        []insights.DailyRecord // newest first
}

func newDashboardModel(s *store.Store, clock insights.Clock) dashboardModel {
	return dashboardModel{store: s, clock: clock}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	todayTotal    int
	limitMinutes  int
	currentStreak int
	longestStreak int
	todayApps     []insights.AppUsage
	recent        []insights.DailyRecord
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := d.clock.Now()

		var msg dashboardDataMsg
		msg.limitMinutes = d.store.GetIntSetting(store.SettingScreentimeLimit, 480)

		if today, _ := d.store.GetRecord(now); today != nil {
			msg.todayTotal = today.TotalMinutes
			msg.todayApps = today.Apps
		}

		windowDays := d.store.GetIntSetting(store.SettingHeatmapWindow, insights.DefaultHeatmapWindow)
		records, _ := d.store.ListRecords(time.Time{}, time.Time{})
		window := insights.HeatmapWindow(records, windowDays, d.clock)
		msg.currentStreak = insights.CurrentStreak(window)
		msg.longestStreak = insights.LongestStreak(window)

		// Last seven recorded days, newest first.
		for i := len(records) - 1; i >= 0 && len(msg.recent) < 7; i-- {
			msg.recent = append(msg.recent, records[i])
		}

		return msg
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayTotal = msg.todayTotal
		d.limitMinutes = msg.limitMinutes
		d.currentStreak = msg.currentStreak
		d.longestStreak = msg.longestStreak
		d.todayApps = msg.todayApps
		d.recent = msg.recent
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	w := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTodayPanel(w),
		d.renderStreakPanel(w),
		d.renderRecentPanel(w),
	)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatMinutes(d.todayTotal))
	header := fmt.Sprintf("%s  %s", title, total)

	var rows []string
	rows = append(rows, header)

	if d.limitMinutes > 0 {
		ratio := limitRatio(d.todayTotal, d.limitMinutes)
		barWidth := min(w-20, 40)
		bar := progressBar(ratio, barWidth)
		barStyle := successStyle
		switch {
		case ratio >= 1:
			barStyle = errorStyle
		case ratio >= 0.75:
			barStyle = warningStyle
		}
		rows = append(rows, fmt.Sprintf("  %s %s", barStyle.Render(bar),
			mutedStyle.Render("limit "+formatMinutes(d.limitMinutes))))
		if d.todayTotal > d.limitMinutes {
			rows = append(rows, errorStyle.Render(fmt.Sprintf("  %s over your daily limit",
				formatMinutes(d.todayTotal-d.limitMinutes))))
		}
	}

	if len(d.todayApps) > 0 {
		rows = append(rows, "")
		for i, a := range d.todayApps {
			if i >= 5 {
				break
			}
			rows = append(rows, fmt.Sprintf("  %-20s %s", a.AppName, formatMinutes(a.TotalMinutes)))
		}
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderStreakPanel(w int) string {
	title := titleStyle.Render("Streak")

	current := fmt.Sprintf("%d", d.currentStreak)
	line := fmt.Sprintf("%s  %s %s  %s",
		title,
		successStyle.Render(current),
		mutedStyle.Render(pluralDays(d.currentStreak)+" running"),
		mutedStyle.Render(fmt.Sprintf("(longest: %d)", d.longestStreak)),
	)
	return panelStyle.Width(w).Render(line)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Days")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No screen time recorded yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, r := range d.recent {
		apps := ""
		if n := len(r.Apps); n > 0 {
			apps = mutedStyle.Render(fmt.Sprintf("%d apps", n))
		}
		rows = append(rows, fmt.Sprintf("  %-14s %-10s %s",
			r.Date.Format("Mon Jan 02"), formatMinutes(r.TotalMinutes), apps))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
