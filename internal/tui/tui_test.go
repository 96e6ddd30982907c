package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/screenwise/screenwise/internal/insights"
	"github.com/screenwise/screenwise/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := insights.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

// ============================================================
// Helpers
// ============================================================

func TestLimitRatio(t *testing.T) {
	tests := []struct {
		today, limit int
		want         float64
	}{
		{0, 480, 0},
		{240, 480, 0.5},
		{480, 480, 1},
		{600, 480, 1}, // capped
		{120, 0, 0},   // no limit set
	}
	for _, tt := range tests {
		if got := limitRatio(tt.today, tt.limit); got != tt.want {
			t.Errorf("limitRatio(%d, %d) = %v, want %v", tt.today, tt.limit, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	bar := progressBar(0.5, 10)
	if got := strings.Count(bar, "█"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
	if got := strings.Count(bar, "░"); got != 5 {
		t.Errorf("empty cells = %d, want 5", got)
	}

	full := progressBar(2.0, 4)
	if strings.Contains(full, "░") {
		t.Errorf("over-limit bar should be fully filled, got %q", full)
	}
}

func TestCycleGranularity(t *testing.T) {
	if got := cycleGranularity(insights.ByWeek, 1); got != insights.ByMonth {
		t.Errorf("week +1 = %v, want month", got)
	}
	if got := cycleGranularity(insights.ByYear, 1); got != insights.ByWeek {
		t.Errorf("year +1 = %v, want week (wrap)", got)
	}
	if got := cycleGranularity(insights.ByWeek, -1); got != insights.ByYear {
		t.Errorf("week -1 = %v, want year (wrap)", got)
	}
	if got := cycleGranularity(insights.Granularity("bogus"), 1); got != insights.ByWeek {
		t.Errorf("unknown granularity = %v, want week", got)
	}
}

func TestGranularityLabel(t *testing.T) {
	if got := granularityLabel(insights.ByWeek); got != "Week" {
		t.Errorf("label = %q, want Week", got)
	}
	if got := granularityLabel(insights.ByMonth); got != "Month" {
		t.Errorf("label = %q, want Month", got)
	}
	if got := granularityLabel(insights.ByYear); got != "Year" {
		t.Errorf("label = %q, want Year", got)
	}
}

func TestHeatColor(t *testing.T) {
	tests := []struct {
		hours float64
		want  int // index into heatRamp
	}{
		{0, 0},
		{-1, 0},
		{0.5, 1},
		{1, 2},
		{1.9, 2},
		{2, 3},
		{3.9, 3},
		{4, 4},
		{12, 4},
	}
	for _, tt := range tests {
		if got := heatColor(tt.hours); got != heatRamp[tt.want] {
			t.Errorf("heatColor(%v) = %v, want ramp[%d]", tt.hours, got, tt.want)
		}
	}
}

func TestMinutesHoursConversion(t *testing.T) {
	if got := minutesToHours("480"); got != "8.0" {
		t.Errorf("minutesToHours(480) = %q, want 8.0", got)
	}
	if got := minutesToHours("90"); got != "1.5" {
		t.Errorf("minutesToHours(90) = %q, want 1.5", got)
	}
	if got := hoursToMinutes("8"); got != "480" {
		t.Errorf("hoursToMinutes(8) = %q, want 480", got)
	}
	if got := hoursToMinutes("1.5"); got != "90" {
		t.Errorf("hoursToMinutes(1.5) = %q, want 90", got)
	}
	// Non-numeric input passes through untouched.
	if got := hoursToMinutes("abc"); got != "abc" {
		t.Errorf("hoursToMinutes(abc) = %q, want abc", got)
	}
}

func TestRenderWeekOverWeek(t *testing.T) {
	if got := renderWeekOverWeek(nil); !strings.Contains(got, "no data") {
		t.Errorf("nil change = %q, want a no-data message", got)
	}

	up := 25.0
	if got := renderWeekOverWeek(&up); !strings.Contains(got, "+25.0%") {
		t.Errorf("positive change = %q, want +25.0%%", got)
	}

	down := -50.0
	if got := renderWeekOverWeek(&down); !strings.Contains(got, "-50.0%") {
		t.Errorf("negative change = %q, want -50.0%%", got)
	}

	flat := 0.0
	if got := renderWeekOverWeek(&flat); !strings.Contains(got, "+0.0%") {
		t.Errorf("flat change = %q, want +0.0%%", got)
	}
}

func TestPluralDays(t *testing.T) {
	if got := pluralDays(1); got != "day" {
		t.Errorf("pluralDays(1) = %q", got)
	}
	if got := pluralDays(0); got != "days" {
		t.Errorf("pluralDays(0) = %q", got)
	}
	if got := pluralDays(5); got != "days" {
		t.Errorf("pluralDays(5) = %q", got)
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-03-15"))

	if err := s.LogAppTime(day(t, "2024-03-15"), "browser", "Browser", "", 90); err != nil {
		t.Fatalf("LogAppTime: %v", err)
	}
	if err := s.AddTime(day(t, "2024-03-14"), 60); err != nil {
		t.Fatalf("AddTime: %v", err)
	}

	d := newDashboardModel(s, clock)
	msg, ok := d.loadData()().(dashboardDataMsg)
	if !ok {
		t.Fatal("loadData did not return dashboardDataMsg")
	}

	if msg.todayTotal != 90 {
		t.Errorf("todayTotal = %d, want 90", msg.todayTotal)
	}
	if msg.limitMinutes != 480 {
		t.Errorf("limitMinutes = %d, want seeded default 480", msg.limitMinutes)
	}
	if len(msg.todayApps) != 1 || msg.todayApps[0].AppID != "browser" {
		t.Errorf("todayApps = %+v, want one browser entry", msg.todayApps)
	}
	if msg.currentStreak != 2 {
		t.Errorf("currentStreak = %d, want 2", msg.currentStreak)
	}
	if msg.longestStreak != 2 {
		t.Errorf("longestStreak = %d, want 2", msg.longestStreak)
	}
	if len(msg.recent) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(msg.recent))
	}
	// Newest first.
	if !msg.recent[0].Date.Equal(day(t, "2024-03-15")) {
		t.Errorf("recent[0] = %v, want 2024-03-15", msg.recent[0].Date)
	}
}

func TestDashboardLoadDataEmpty(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-03-15"))

	d := newDashboardModel(s, clock)
	msg, ok := d.loadData()().(dashboardDataMsg)
	if !ok {
		t.Fatal("loadData did not return dashboardDataMsg")
	}
	if msg.todayTotal != 0 || msg.currentStreak != 0 || len(msg.recent) != 0 {
		t.Errorf("empty store should produce zero dashboard, got %+v", msg)
	}
}

// ============================================================
// Trends
// ============================================================

func TestTrendsRefresh(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-01-20"))

	if err := s.AddTime(day(t, "2024-01-15"), 120); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	if err := s.AddTime(day(t, "2024-01-16"), 60); err != nil {
		t.Fatalf("AddTime: %v", err)
	}

	tr := newTrendsModel(s, clock)
	msg, ok := tr.refresh()().(trendsDataMsg)
	if !ok {
		t.Fatal("refresh did not return trendsDataMsg")
	}

	if msg.series.Granularity != insights.ByWeek {
		t.Errorf("granularity = %v, want week", msg.series.Granularity)
	}
	var sum int
	for _, v := range msg.series.Values {
		sum += v
	}
	if sum != 180 {
		t.Errorf("series total = %d, want 180", sum)
	}
}

func TestTrendsAppFilter(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-01-20"))

	if err := s.LogAppTime(day(t, "2024-01-15"), "browser", "Browser", "", 100); err != nil {
		t.Fatalf("LogAppTime: %v", err)
	}
	if err := s.LogAppTime(day(t, "2024-01-15"), "games", "Games", "", 40); err != nil {
		t.Fatalf("LogAppTime: %v", err)
	}

	tr := newTrendsModel(s, clock)
	tr.appFilter = "games"
	msg := tr.refresh()().(trendsDataMsg)

	var sum int
	for _, v := range msg.series.Values {
		sum += v
	}
	if sum != 40 {
		t.Errorf("filtered total = %d, want 40", sum)
	}
	if len(msg.apps) != 2 {
		t.Errorf("apps = %d, want 2", len(msg.apps))
	}
}

func TestTrendsPickerSelection(t *testing.T) {
	s := newTestStore(t)
	tr := newTrendsModel(s, insights.FixedClock(day(t, "2024-01-20")))
	tr.picking = true
	tr.apps = []insights.AppUsage{
		{AppID: "browser", AppName: "Browser", TotalMinutes: 100},
	}
	tr.pickerCursor = 1

	tr, _ = tr.update(tea.KeyMsg{Type: tea.KeyEnter})
	if tr.picking {
		t.Error("picker should close on enter")
	}
	if tr.appFilter != "browser" || tr.appName != "Browser" {
		t.Errorf("filter = %q/%q, want browser/Browser", tr.appFilter, tr.appName)
	}

	// Slot 0 clears the filter.
	tr.picking = true
	tr.pickerCursor = 0
	tr, _ = tr.update(tea.KeyMsg{Type: tea.KeyEnter})
	if tr.appFilter != "" {
		t.Errorf("filter = %q, want cleared", tr.appFilter)
	}
}

// ============================================================
// Insights
// ============================================================

func TestInsightsRefresh(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-03-15"))

	if err := s.AddTime(day(t, "2024-03-10"), 60); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	if err := s.AddTime(day(t, "2024-03-11"), 180); err != nil {
		t.Fatalf("AddTime: %v", err)
	}

	m := newInsightsModel(s, clock)
	msg, ok := m.refresh()().(insightsDataMsg)
	if !ok {
		t.Fatal("refresh did not return insightsDataMsg")
	}
	if msg.summary.AverageDailyMinutes != 120 {
		t.Errorf("average = %d, want 120", msg.summary.AverageDailyMinutes)
	}
	if msg.count != 2 {
		t.Errorf("record count = %d, want 2", msg.count)
	}
}

// ============================================================
// Heatmap
// ============================================================

func TestHeatmapRefresh(t *testing.T) {
	s := newTestStore(t)
	clock := insights.FixedClock(day(t, "2024-03-15"))

	if err := s.AddTime(day(t, "2024-03-14"), 90); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	if err := s.AddTime(day(t, "2024-03-15"), 30); err != nil {
		t.Fatalf("AddTime: %v", err)
	}

	m := newHeatmapModel(s, clock)
	msg, ok := m.refresh()().(heatmapDataMsg)
	if !ok {
		t.Fatal("refresh did not return heatmapDataMsg")
	}
	if msg.windowDays != 90 {
		t.Errorf("windowDays = %d, want seeded default 90", msg.windowDays)
	}
	if len(msg.window) != 90 {
		t.Fatalf("window = %d points, want 90", len(msg.window))
	}
	last := msg.window[len(msg.window)-1]
	if !last.Date.Equal(day(t, "2024-03-15")) {
		t.Errorf("last point = %v, want 2024-03-15", last.Date)
	}
	if last.Count != 0.5 {
		t.Errorf("last count = %v, want 0.5", last.Count)
	}
	if msg.currentStreak != 2 {
		t.Errorf("currentStreak = %d, want 2", msg.currentStreak)
	}
}

// ============================================================
// App shell
// ============================================================

func TestAppViewSwitching(t *testing.T) {
	s := newTestStore(t)
	app := NewAppWithClock(s, insights.FixedClock(day(t, "2024-03-15")))

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	app = model.(App)
	if app.activeView != viewInsights {
		t.Errorf("activeView = %v, want insights", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewHeatmap {
		t.Errorf("activeView = %v, want heatmap after tab", app.activeView)
	}

	// Tab wraps back around to the dashboard.
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewDashboard {
		t.Errorf("activeView = %v, want dashboard after wrap", app.activeView)
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewAppWithClock(s, insights.FixedClock(day(t, "2024-03-15")))

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	if !strings.Contains(app.View(), "Export Format") {
		t.Error("picker overlay missing from view")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Error("esc should close the export picker")
	}
}

func TestAppViewRenders(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddTime(day(t, "2024-03-15"), 120); err != nil {
		t.Fatalf("AddTime: %v", err)
	}
	app := NewAppWithClock(s, insights.FixedClock(day(t, "2024-03-15")))

	if got := app.View(); got != "Loading..." {
		t.Errorf("zero-width view = %q, want Loading...", got)
	}

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(App)

	out := app.View()
	if !strings.Contains(out, "screenwise") {
		t.Error("header title missing")
	}
	for _, name := range viewNames {
		if !strings.Contains(out, name) {
			t.Errorf("tab %q missing from header", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewAppWithClock(s, insights.FixedClock(day(t, "2024-03-15")))

	model, _ := app.Update(statusMsg{text: "saved"})
	app = model.(App)
	if app.status != "saved" {
		t.Errorf("status = %q, want saved", app.status)
	}

	model, _ = app.Update(exportDoneMsg{path: "/tmp/out.csv"})
	app = model.(App)
	if !strings.Contains(app.status, "/tmp/out.csv") {
		t.Errorf("status = %q, want export path", app.status)
	}
}
