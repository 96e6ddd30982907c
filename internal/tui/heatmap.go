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

type heatmapModel struct {
	store  *store.Store
	clock  insights.Clock
	width  int
	height int

	window        []insights.HeatmapPoint
	windowDays    int
	currentStreak int
	longestStreak int
}

func newHeatmapModel(s *store.Store, clock insights.Clock) heatmapModel {
	return heatmapModel{store: s, clock: clock}
}

func (m *heatmapModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type heatmapDataMsg struct {
	window        []insights.HeatmapPoint
	windowDays    int
	currentStreak int
	longestStreak int
}

func (m heatmapModel) refresh() tea.Cmd {
	return func() tea.Msg {
		windowDays := m.store.GetIntSetting(store.SettingHeatmapWindow, insights.DefaultHeatmapWindow)
		records, _ := m.store.ListRecords(time.Time{}, time.Time{})
		window := insights.HeatmapWindow(records, windowDays, m.clock)
		return heatmapDataMsg{
			window:        window,
			windowDays:    windowDays,
			currentStreak: insights.CurrentStreak(window),
			longestStreak: insights.LongestStreak(window),
		}
	}
}

func (m heatmapModel) update(msg tea.Msg) (heatmapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case heatmapDataMsg:
		m.window = msg.window
		m.windowDays = msg.windowDays
		m.currentStreak = msg.currentStreak
		m.longestStreak = msg.longestStreak
		return m, nil
	}
	return m, nil
}

func (m heatmapModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Activity")

	if len(m.window) == 0 {
		return panelStyle.Width(w).Render(title + "\n" + mutedStyle.Render("Loading..."))
	}

	var totalHours float64
	for _, p := range m.window {
		totalHours += p.Count
	}
	header := fmt.Sprintf("%s  %s", title,
		mutedStyle.Render(fmt.Sprintf("last %d days, %s total", m.windowDays, formatHours(totalHours))))

	grid := m.renderGrid()
	legend := m.renderLegend()
	streaks := fmt.Sprintf("  %s %s   %s %s",
		mutedStyle.Render("current streak:"),
		successStyle.Render(fmt.Sprintf("%d %s", m.currentStreak, pluralDays(m.currentStreak))),
		mutedStyle.Render("longest:"),
		highlightStyle.Render(fmt.Sprintf("%d %s", m.longestStreak, pluralDays(m.longestStreak))),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", legend, streaks),
	)
}

// renderGrid lays the window out as one column per ISO week and one row
// per weekday, Monday on top, in the contribution-graph shape.
func (m heatmapModel) renderGrid() string {
	counts := make(map[string]float64, len(m.window))
	for _, p := range m.window {
		counts[p.Date.Format(insights.DateFormat)] = p.Count
	}

	first := m.window[0].Date
	last := m.window[len(m.window)-1].Date
	gridStart := insights.WeekStart(first)

	weekdayNames := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	var rows []string
	for wd := 0; wd < 7; wd++ {
		var sb strings.Builder
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  %-4s", weekdayNames[wd])))
		for colStart := gridStart; !colStart.After(last); colStart = colStart.AddDate(0, 0, 7) {
			day := colStart.AddDate(0, 0, wd)
			if day.Before(first) || day.After(last) {
				sb.WriteString("  ")
				continue
			}
			count := counts[day.Format(insights.DateFormat)]
			cell := lipgloss.NewStyle().Foreground(heatColor(count)).Render("■")
			sb.WriteString(cell + " ")
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func (m heatmapModel) renderLegend() string {
	var sb strings.Builder
	sb.WriteString(mutedStyle.Render("  less "))
	for _, c := range heatRamp {
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Render("■ "))
	}
	sb.WriteString(mutedStyle.Render("more"))
	return sb.String()
}

// heatColor buckets fractional hours into the intensity ramp.
func heatColor(hours float64) lipgloss.Color {
	switch {
	case hours <= 0:
		return heatRamp[0]
	case hours < 1:
		return heatRamp[1]
	case hours < 2:
		return heatRamp[2]
	case hours < 4:
		return heatRamp[3]
	default:
		return heatRamp[4]
	}
}
