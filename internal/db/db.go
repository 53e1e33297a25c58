package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marcus/bookmodal/internal/config"
	"github.com/marcus/bookmodal/internal/models"
	_ "modernc.org/sqlite"
)

const (
	dbFile = config.Dir + "/bookings.db"
)

// DB wraps the database connection
type DB struct {
	conn    *sql.DB
	baseDir string
}

// Path returns the database file location under baseDir
func Path(baseDir string) string {
	return filepath.Join(baseDir, dbFile)
}

// Open opens (creating if needed) the submissions database
func Open(baseDir string) (*DB, error) {
	dbPath := Path(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	// Single writer; keeps the pool from growing in the long-running TUI
	conn.SetMaxOpenConns(1)

	return &DB{conn: conn, baseDir: baseDir}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// BaseDir returns the base directory for the database
func (db *DB) BaseDir() string {
	return db.baseDir
}

// RecordSubmission stores a confirmed booking
func (db *DB) RecordSubmission(ctx context.Context, sub models.Submission) error {
	p := sub.Payload()
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO submissions (id, name, phone, email, treatment_id, treatment_label,
			time_slot_id, time_slot_label, notes, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Phone, p.Email, p.TreatmentID, p.TreatmentLabel,
		p.TimeSlotID, p.TimeSlotLabel, p.Notes, p.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", p.ID, err)
	}
	return nil
}

// ListSubmissions returns recorded bookings, newest first. limit <= 0 means no limit.
func (db *DB) ListSubmissions(ctx context.Context, limit int) ([]models.Payload, error) {
	query := `SELECT id, name, phone, email, treatment_id, treatment_label,
		time_slot_id, time_slot_label, notes, submitted_at
		FROM submissions ORDER BY submitted_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Payload
	for rows.Next() {
		var p models.Payload
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.TreatmentID, &p.TreatmentLabel,
			&p.TimeSlotID, &p.TimeSlotLabel, &p.Notes, &p.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountSubmissions returns the number of recorded bookings
func (db *DB) CountSubmissions(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
