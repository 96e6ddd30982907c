package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/screenwise/screenwise/internal/insights"
)

// AddTime accumulates minutes onto the daily total for date, creating the
// record if needed. The date's time-of-day is discarded.
func (s *Store) AddTime(date time.Time, minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("add time: minutes must be non-negative, got %d", minutes)
	}
	day := insights.DateOnly(date).Format(insights.DateFormat)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.Exec(
		`INSERT INTO daily_records (date, total_minutes, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   total_minutes = total_minutes + excluded.total_minutes,
		   updated_at = excluded.updated_at`,
		day, minutes, now, now,
	)
	if err != nil {
		return fmt.Errorf("add time for %s: %w", day, err)
	}
	return nil
}

// LogAppTime accumulates minutes for one app on one date and bumps the
// daily total by the same amount.
func (s *Store) LogAppTime(date time.Time, appID, appName, icon string, minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("log app time: minutes must be non-negative, got %d", minutes)
	}
	if appID == "" {
		return fmt.Errorf("log app time: empty app id")
	}
	day := insights.DateOnly(date).Format(insights.DateFormat)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("log app time: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO daily_records (date, total_minutes, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   total_minutes = total_minutes + excluded.total_minutes,
		   updated_at = excluded.updated_at`,
		day, minutes, now, now,
	); err != nil {
		return fmt.Errorf("log app time for %s: %w", day, err)
	}

	if _, err := tx.Exec(
		`INSERT INTO app_usage (date, app_id, app_name, icon, minutes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date, app_id) DO UPDATE SET
		   minutes = minutes + excluded.minutes,
		   app_name = excluded.app_name,
		   icon = CASE WHEN excluded.icon != '' THEN excluded.icon ELSE icon END`,
		day, appID, appName, icon, minutes,
	); err != nil {
		return fmt.Errorf("log app usage for %s/%s: %w", day, appID, err)
	}

	return tx.Commit()
}

// GetRecord returns the record for a single date, nil when none exists.
func (s *Store) GetRecord(date time.Time) (*insights.DailyRecord, error) {
	day := insights.DateOnly(date).Format(insights.DateFormat)

	var total int
	err := s.db.QueryRow(
		`SELECT total_minutes FROM daily_records WHERE date = ?`, day,
	).Scan(&total)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", day, err)
	}

	apps, err := s.appsForDate(day)
	if err != nil {
		return nil, err
	}
	d, _ := insights.ParseDate(day)
	return &insights.DailyRecord{Date: d, TotalMinutes: total, Apps: apps}, nil
}

// ListRecords returns records in [from, to] ascending by date, each with its
// app usage attached. Zero from/to bounds are open.
func (s *Store) ListRecords(from, to time.Time) ([]insights.DailyRecord, error) {
	query := `SELECT date, total_minutes FROM daily_records WHERE 1=1`
	var args []any
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, insights.DateOnly(from).Format(insights.DateFormat))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, insights.DateOnly(to).Format(insights.DateFormat))
	}
	query += ` ORDER BY date`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []insights.DailyRecord
	index := make(map[string]int)
	for rows.Next() {
		var day string
		var total int
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		d, err := insights.ParseDate(day)
		if err != nil {
			return nil, err
		}
		index[day] = len(records)
		records = append(records, insights.DailyRecord{Date: d, TotalMinutes: total})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Attach app usage in a single pass.
	appRows, err := s.db.Query(
		`SELECT date, app_id, app_name, icon, minutes FROM app_usage ORDER BY date, minutes DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list app usage: %w", err)
	}
	defer appRows.Close()

	for appRows.Next() {
		var day string
		var a insights.AppUsage
		if err := appRows.Scan(&day, &a.AppID, &a.AppName, &a.IconRef, &a.TotalMinutes); err != nil {
			return nil, err
		}
		if i, ok := index[day]; ok {
			records[i].Apps = append(records[i].Apps, a)
		}
	}
	return records, appRows.Err()
}

// ListApps returns every tracked app with its all-time minutes, most used
// first.
func (s *Store) ListApps() ([]insights.AppUsage, error) {
	rows, err := s.db.Query(`
		SELECT app_id, MAX(app_name), MAX(icon), COALESCE(SUM(minutes), 0)
		FROM app_usage
		GROUP BY app_id
		ORDER BY SUM(minutes) DESC, app_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	var apps []insights.AppUsage
	for rows.Next() {
		var a insights.AppUsage
		if err := rows.Scan(&a.AppID, &a.AppName, &a.IconRef, &a.TotalMinutes); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (s *Store) appsForDate(day string) ([]insights.AppUsage, error) {
	rows, err := s.db.Query(
		`SELECT app_id, app_name, icon, minutes FROM app_usage WHERE date = ? ORDER BY minutes DESC`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("apps for %s: %w", day, err)
	}
	defer rows.Close()

	var apps []insights.AppUsage
	for rows.Next() {
		var a insights.AppUsage
		if err := rows.Scan(&a.AppID, &a.AppName, &a.IconRef, &a.TotalMinutes); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
