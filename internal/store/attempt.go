package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flightify/flightify/internal/session"
)

// ErrAttemptNotFound is returned by Attempt for unknown IDs.
var ErrAttemptNotFound = errors.New("attempt not found")

// ZoneResult is the stored verdict for one zone.
type ZoneResult struct {
	ZoneID   string   `json:"zone_id"`
	Label    string   `json:"label"`
	Correct  bool     `json:"correct"`
	Required []string `json:"required"`
	Placed   []string `json:"placed"`
}

// AttemptData captures a finished attempt.
type AttemptData struct {
	ID                 string
	ConfigurationKey   string
	ConfigurationLabel string
	Correct            int
	Total              int
	StartedAt          time.Time
	FinishedAt         time.Time
	Zones              []ZoneResult
}

// AttemptRecord is an AttemptData as read back, with its sequence number.
type AttemptRecord struct {
	AttemptData
	Sequence int64
}

// AttemptRepo is the append-only log of finished attempts.
type AttemptRepo interface {
	// AppendAttempt records a finished attempt and returns its sequence number.
	AppendAttempt(ctx context.Context, data AttemptData) (int64, error)

	// RecentAttempts returns up to limit attempts, newest first (0 = unlimited).
	RecentAttempts(ctx context.Context, limit int) ([]AttemptRecord, error)

	// Attempt returns a single attempt by ID.
	Attempt(ctx context.Context, id string) (AttemptRecord, error)
}

// AttemptFromResult converts a graded session into storable form.
func AttemptFromResult(res session.Result) AttemptData {
	zones := make([]ZoneResult, 0, len(res.Verdicts))
	for _, v := range res.Verdicts {
		zones = append(zones, ZoneResult{
			ZoneID:   v.ZoneID,
			Label:    v.Label,
			Correct:  v.IsCorrect,
			Required: v.Required,
			Placed:   v.Placed,
		})
	}
	return AttemptData{
		ID:                 res.AttemptID,
		ConfigurationKey:   res.ConfigurationKey,
		ConfigurationLabel: res.ConfigurationLabel,
		Correct:            res.Score.Correct,
		Total:              res.Score.Total,
		StartedAt:          res.StartedAt,
		FinishedAt:         res.FinishedAt,
		Zones:              zones,
	}
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) (int64, error) {
	zonesJSON, err := json.Marshal(data.Zones)
	if err != nil {
		return 0, fmt.Errorf("encode zones: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sequence), 0) + 1 FROM attempts`,
	).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO attempts
		(id, sequence, configuration_key, configuration_label, correct, total, started_at, finished_at, zones_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.ID, seq, data.ConfigurationKey, data.ConfigurationLabel,
		data.Correct, data.Total,
		formatTime(data.StartedAt), formatTime(data.FinishedAt),
		string(zonesJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seq, nil
}

const attemptColumns = `id, sequence, configuration_key, configuration_label, correct, total, started_at, finished_at, zones_json`

func (r *attemptRepo) RecentAttempts(ctx context.Context, limit int) ([]AttemptRecord, error) {
	query := `SELECT ` + attemptColumns + ` FROM attempts ORDER BY sequence DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		rec, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return records, nil
}

func (r *attemptRepo) Attempt(ctx context.Context, id string) (AttemptRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE id = ?`, id)
	rec, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptRecord{}, fmt.Errorf("%w: %s", ErrAttemptNotFound, id)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner) (AttemptRecord, error) {
	var (
		rec                   AttemptRecord
		startedAt, finishedAt string
		zonesJSON             string
	)
	err := s.Scan(&rec.ID, &rec.Sequence, &rec.ConfigurationKey, &rec.ConfigurationLabel,
		&rec.Correct, &rec.Total, &startedAt, &finishedAt, &zonesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AttemptRecord{}, err
		}
		return AttemptRecord{}, fmt.Errorf("scan attempt: %w", err)
	}

	rec.StartedAt = parseTime(startedAt)
	rec.FinishedAt = parseTime(finishedAt)
	if err := json.Unmarshal([]byte(zonesJSON), &rec.Zones); err != nil {
		return AttemptRecord{}, fmt.Errorf("decode zones of %s: %w", rec.ID, err)
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
