package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/screenwise/screenwise/internal/insights"
	"github.com/screenwise/screenwise/internal/store"
)

var granularities = []insights.Granularity{insights.ByWeek, insights.ByMonth, insights.ByYear}

func granularityLabel(g insights.Granularity) string {
	switch g {
	case insights.ByWeek:
		return "Week"
	case insights.ByMonth:
		return "Month"
	case insights.ByYear:
		return "Year"
	}
	return string(g)
}

type trendsModel struct {
	store  *store.Store
	clock  insights.Clock
	width  int
	height int

	granularity insights.Granularity
	appFilter   string // app id, empty = all apps
	appName     string
	series      insights.Series

	picking      bool
	apps         []insights.AppUsage
	pickerCursor int

	chart barchart.Model
}

func newTrendsModel(s *store.Store, clock insights.Clock) trendsModel {
	return trendsModel{
		store:       s,
		clock:       clock,
		granularity: insights.ByWeek,
		chart:       barchart.New(60, 12),
	}
}

func (t *trendsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type trendsDataMsg struct {
	series insights.Series
	apps   []insights.AppUsage
}

func (t trendsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := t.store.ListRecords(time.Time{}, time.Time{})
		apps, _ := t.store.ListApps()
		series := insights.Aggregate(records, t.granularity, t.appFilter, t.clock)
		return trendsDataMsg{series: series, apps: apps}
	}
}

func (t trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsDataMsg:
		t.series = msg.series
		t.apps = msg.apps
		t.buildChart()
		return t, nil

	case tea.KeyMsg:
		if t.picking {
			return t.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, keys.Left):
			t.granularity = cycleGranularity(t.granularity, -1)
			return t, t.refresh()
		case key.Matches(msg, keys.Right):
			t.granularity = cycleGranularity(t.granularity, 1)
			return t, t.refresh()
		case key.Matches(msg, keys.Filter):
			if len(t.apps) == 0 {
				return t, func() tea.Msg {
					return statusMsg{text: "No tracked apps yet. Log one with: screenwise log --app NAME --minutes N"}
				}
			}
			t.picking = true
			t.pickerCursor = 0
			return t, nil
		}
	}
	return t, nil
}

func (t trendsModel) updatePicker(msg tea.KeyMsg) (trendsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.pickerCursor > 0 {
			t.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if t.pickerCursor < len(t.apps) { // slot 0 = "All apps"
			t.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		t.picking = false
		if t.pickerCursor == 0 {
			t.appFilter = ""
			t.appName = ""
		} else {
			a := t.apps[t.pickerCursor-1]
			t.appFilter = a.AppID
			t.appName = a.AppName
		}
		return t, t.refresh()
	case key.Matches(msg, keys.Back):
		t.picking = false
	}
	return t, nil
}

func cycleGranularity(g insights.Granularity, delta int) insights.Granularity {
	for i, cur := range granularities {
		if cur == g {
			return granularities[(i+delta+len(granularities))%len(granularities)]
		}
	}
	return insights.ByWeek
}

func (t *trendsModel) buildChart() {
	chartWidth := t.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if t.height > 30 {
		chartHeight = 16
	}

	t.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	if t.appFilter != "" {
		barStyle = lipgloss.NewStyle().Foreground(colorAccent)
	}

	var bars []barchart.BarData
	for i := range t.series.Labels {
		hours := float64(t.series.Values[i]) / 60.0
		bars = append(bars, barchart.BarData{
			Label: t.series.Labels[i],
			Values: []barchart.BarValue{
				{Name: t.series.Labels[i], Value: hours, Style: barStyle},
			},
		})
	}

	t.chart.PushAll(bars)
	t.chart.Draw()
}

func (t trendsModel) view() string {
	w := t.width - 4

	if t.picking {
		return t.renderAppPicker(w)
	}

	// Granularity tabs
	var tabs []string
	for _, g := range granularities {
		label := granularityLabel(g)
		if g == t.granularity {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	filterLabel := mutedStyle.Render("All apps")
	if t.appFilter != "" {
		filterLabel = accentStyle.Render(t.appName)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Trends"), "  ", tabRow, "  ", filterLabel,
	)

	chartView := t.chart.View()
	tableView := t.renderBucketTable(w)
	nav := mutedStyle.Render("  ←/→: granularity  a: app filter")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (t trendsModel) renderBucketTable(w int) string {
	if len(t.series.Labels) == 0 {
		return mutedStyle.Render("  No data yet")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-10s %-26s %10s", "Period", "Range", "Total"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	// Show the most recent periods first, capped for screen space.
	shown := 0
	for i := len(t.series.Labels) - 1; i >= 0 && shown < 8; i-- {
		rows = append(rows, fmt.Sprintf("  %-10s %-26s %10s",
			t.series.Labels[i], t.series.Ranges[i], formatMinutes(t.series.Values[i])))
		shown++
	}

	return strings.Join(rows, "\n")
}

func (t trendsModel) renderAppPicker(w int) string {
	title := titleStyle.Render("Filter by App")

	var rows []string
	rows = append(rows, title)

	options := make([]string, 0, len(t.apps)+1)
	options = append(options, "All apps")
	for _, a := range t.apps {
		options = append(options, fmt.Sprintf("%-20s %s", a.AppName, formatMinutes(a.TotalMinutes)))
	}

	for i, opt := range options {
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
