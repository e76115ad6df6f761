package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans one events row and decodes its payload.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (storage.Position, *v1.Event, error) {
	var (
		seq        int64
		rec        v1.Record
		eventType  string
		occurredAt time.Time
		payload    []byte
	)

	err := row.Scan(
		&seq,
		&rec.EventID,
		&eventType,
		&rec.AggregateID,
		&occurredAt,
		&payload,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	rec.EventType = v1.EventType(eventType)
	rec.Timestamp = occurredAt
	rec.Payload = payload

	evt, err := v1.Decode(rec)
	if err != nil {
		return 0, nil, err
	}
	return storage.Position(seq), evt, nil
}

// storageErr wraps a driver or decode failure so callers can tell it apart from bad input.
func storageErr(op string, err error) error {
	return &storage.Error{Op: op, Err: err}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
