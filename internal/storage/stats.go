// ABOUTME: Stats snapshot operations for SQLite storage.
// ABOUTME: Seeding, current-row reads, in-place activity updates, and bulk replace.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

const statsColumns = `id, COALESCE(steps, 0), COALESCE(calories, 0), COALESCE(active_min, 0),
		COALESCE(sleep_hours, ''), COALESCE(heart_rate, 0), COALESCE(weight, 0)`

// SeedStats inserts seed when the table is empty. It reports whether a row
// was inserted. The check and insert are one statement, so two callers
// cannot both seed.
func (d *DB) SeedStats(ctx context.Context, seed models.StatsSnapshot) (bool, error) {
	query := `
		INSERT INTO user_stats (steps, calories, active_min, sleep_hours, heart_rate, weight)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM user_stats)
	`

	result, err := d.db.ExecContext(ctx, query,
		seed.Steps, seed.Calories, seed.ActiveMinutes,
		seed.Sleep, seed.HeartRate, seed.Weight)
	if err != nil {
		return false, fmt.Errorf("seed stats: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed stats: %w", err)
	}
	return affected > 0, nil
}

// CurrentStats returns the snapshot with the highest ID.
func (d *DB) CurrentStats(ctx context.Context) (*models.StatsSnapshot, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats ORDER BY id DESC LIMIT 1`

	s, err := scanStats(d.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoStats
		}
		return nil, fmt.Errorf("current stats: %w", err)
	}
	return s, nil
}

// GetStats returns the snapshot with the given ID.
func (d *DB) GetStats(ctx context.Context, id int64) (*models.StatsSnapshot, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats WHERE id = ?`

	s, err := scanStats(d.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("stats %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return s, nil
}

// UpdateActivity overwrites steps, calories, active minutes and heart rate
// on the row with the given ID and returns the updated row. Sleep and
// weight are left as they were.
func (d *DB) UpdateActivity(ctx context.Context, id int64, u models.ActivityUpdate) (*models.StatsSnapshot, error) {
	query := `
		UPDATE user_stats
		SET steps = ?, calories = ?, active_min = ?, heart_rate = ?
		WHERE id = ?
		RETURNING ` + statsColumns

	s, err := scanStats(d.db.QueryRowContext(ctx, query,
		u.Steps, u.Calories, u.ActiveMinutes, u.HeartRate, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update stats %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update stats: %w", err)
	}
	return s, nil
}

// InsertStats appends a snapshot and sets its ID. A non-zero ID is kept.
func (d *DB) InsertStats(ctx context.Context, s *models.StatsSnapshot) error {
	return insertStats(ctx, d.db, s)
}

func insertStats(ctx context.Context, ex execer, s *models.StatsSnapshot) error {
	var id any
	if s.ID > 0 {
		id = s.ID
	}

	query := `
		INSERT INTO user_stats (id, steps, calories, active_min, sleep_hours, heart_rate, weight)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := ex.ExecContext(ctx, query, id,
		s.Steps, s.Calories, s.ActiveMinutes, s.Sleep, s.HeartRate, s.Weight)
	if err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}
	s.ID = newID
	return nil
}

// ListStats returns every snapshot ordered by ID.
func (d *DB) ListStats(ctx context.Context) ([]*models.StatsSnapshot, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats ORDER BY id`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.StatsSnapshot
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// CountStats returns the number of stored snapshots.
func (d *DB) CountStats(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_stats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stats: %w", err)
	}
	return n, nil
}

// ReplaceStats deletes every snapshot and inserts the given ones in a
// single transaction.
func (d *DB) ReplaceStats(ctx context.Context, snapshots []*models.StatsSnapshot) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceStats(ctx, tx, snapshots); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func replaceStats(ctx context.Context, ex execer, snapshots []*models.StatsSnapshot) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM user_stats`); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	for _, s := range snapshots {
		if err := insertStats(ctx, ex, s); err != nil {
			return err
		}
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (*models.StatsSnapshot, error) {
	var s models.StatsSnapshot
	err := row.Scan(&s.ID, &s.Steps, &s.Calories, &s.ActiveMinutes, &s.Sleep, &s.HeartRate, &s.Weight)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
