package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/screenwise/screenwise/internal/insights"
	"github.com/screenwise/screenwise/internal/store"
)

type insightsModel struct {
	store  *store.Store
	clock  insights.Clock
	width  int
	height int

	summary     insights.Summary
	recordCount int
}

func newInsightsModel(s *store.Store, clock insights.Clock) insightsModel {
	return insightsModel{store: s, clock: clock}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type insightsDataMsg struct {
	summary insights.Summary
	count   int
}

func (m insightsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, _ := m.store.ListRecords(time.Time{}, time.Time{})
		return insightsDataMsg{
			summary: insights.Summarize(records, m.clock),
			count:   len(records),
		}
	}
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsDataMsg:
		m.summary = msg.summary
		m.recordCount = msg.count
		return m, nil
	}
	return m, nil
}

func (m insightsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Insights")

	if m.recordCount == 0 {
		return panelStyle.Width(w).Render(
			title + "\n" + mutedStyle.Render("No screen time recorded yet"),
		)
	}

	s := m.summary
	var rows []string
	rows = append(rows, fmt.Sprintf("%s  %s", title,
		mutedStyle.Render(fmt.Sprintf("over %d recorded days", m.recordCount))))
	rows = append(rows, "")

	rows = append(rows, m.row("Daily average", highlightStyle.Render(formatMinutes(s.AverageDailyMinutes))))

	if s.BestDay != nil {
		rows = append(rows, m.row("Best day", fmt.Sprintf("%s  %s",
			successStyle.Render(formatMinutes(s.BestDay.TotalMinutes)),
			mutedStyle.Render(s.BestDay.DateLabel))))
	}
	if s.WorstDay != nil {
		rows = append(rows, m.row("Worst day", fmt.Sprintf("%s  %s",
			errorStyle.Render(formatMinutes(s.WorstDay.TotalMinutes)),
			mutedStyle.Render(s.WorstDay.DateLabel))))
	}

	rows = append(rows, m.row("Week over week", renderWeekOverWeek(s.WeekOverWeekPercent)))
	rows = append(rows, "")
	rows = append(rows, m.row("In 5 years", fmt.Sprintf("%s of screen time",
		warningStyle.Render(fmt.Sprintf("%d days", s.FiveYearProjectionDays)))))
	rows = append(rows, m.row("In 50 years", fmt.Sprintf("%s of screen time",
		warningStyle.Render(fmt.Sprintf("%d days", s.FiftyYearProjectionDays)))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m insightsModel) row(label, value string) string {
	return fmt.Sprintf("  %-16s %s", label, value)
}

// renderWeekOverWeek distinguishes "no data" (nil) from a true 0% change.
func renderWeekOverWeek(pct *float64) string {
	if pct == nil {
		return mutedStyle.Render("no data for previous week")
	}
	text := fmt.Sprintf("%+.1f%%", *pct)
	if *pct > 0 {
		return errorStyle.Render(text + " ↑")
	}
	if *pct < 0 {
		return successStyle.Render(text + " ↓")
	}
	return mutedStyle.Render(text)
}
