// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/footprint/models"
)

// Fixed width so that text ordering matches time ordering
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore persists records in the emission_record table (see db.CreateSchema).
// Queries use $N placeholders, which both lib/pq and modernc sqlite accept.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLStore wraps an open database handle. A nil clock means time.Now.
func NewSQLStore(db *sql.DB, now func() time.Time) *SQLStore {
	if now == nil {
		now = time.Now
	}
	return &SQLStore{db: db, now: now}
}

const selectRecords = `
	SELECT id, recorded_at, record_date, activity_type, input_data,
	       co2_kg, co2_unit, emission_factor, constituent_gases
	FROM emission_record
`

func (s *SQLStore) Add(ctx context.Context, rec models.EmissionRecord) (models.EmissionRecord, error) {
	rec = stamp(rec, s.now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO emission_record (id, recorded_at, record_date, activity_type, input_data,
		                             co2_kg, co2_unit, emission_factor, constituent_gases)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.ID, rec.Timestamp.Format(timestampLayout), rec.Date, rec.ActivityType,
		nullJSON(rec.InputData), rec.CO2Kg, rec.CO2Unit,
		nullJSON(rec.EmissionFactor), nullJSON(rec.ConstituentGases))
	if err != nil {
		return models.EmissionRecord{}, fmt.Errorf("failed to insert emission record: %w", err)
	}

	return rec, nil
}

func (s *SQLStore) All(ctx context.Context) ([]models.EmissionRecord, error) {
	return s.query(ctx, selectRecords+` ORDER BY recorded_at, id`)
}

func (s *SQLStore) ByDateRange(ctx context.Context, start, end string) ([]models.EmissionRecord, error) {
	return s.query(ctx, selectRecords+`
		WHERE record_date >= $1 AND record_date <= $2
		ORDER BY recorded_at, id
	`, start, end)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM emission_record WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete emission record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete emission record: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM emission_record`); err != nil {
		return fmt.Errorf("failed to clear emission records: %w", err)
	}
	return nil
}

func (s *SQLStore) query(ctx context.Context, query string, args ...interface{}) ([]models.EmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query emission records: %w", err)
	}
	defer rows.Close()

	records := []models.EmissionRecord{}
	for rows.Next() {
		var (
			rec        models.EmissionRecord
			recordedAt string
			input      sql.NullString
			unit       sql.NullString
			factor     sql.NullString
			gases      sql.NullString
		)
		if err := rows.Scan(&rec.ID, &recordedAt, &rec.Date, &rec.ActivityType, &input,
			&rec.CO2Kg, &unit, &factor, &gases); err != nil {
			return nil, fmt.Errorf("failed to scan emission record: %w", err)
		}

		rec.Timestamp, err = time.Parse(timestampLayout, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid recorded_at %q for %s: %w", recordedAt, rec.ID, err)
		}
		rec.CO2Unit = unit.String
		rec.InputData = rawJSON(input)
		rec.EmissionFactor = rawJSON(factor)
		rec.ConstituentGases = rawJSON(gases)

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read emission records: %w", err)
	}

	return records, nil
}

func nullJSON(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func rawJSON(s sql.NullString) json.RawMessage {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.RawMessage(s.String)
}
