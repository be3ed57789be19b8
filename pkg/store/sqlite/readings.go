package sqlite

import (
	"context"

	"github.com/johncui/senses/pkg/model"
)

// ReadingsForLog returns the readings archived with one experience.
func (d *Database) ReadingsForLog(ctx context.Context, logID string) ([]model.Reading, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT id, sense, intensity, quality, location, created_at
        FROM readings
        WHERE log_id = ?
        ORDER BY sense;
    `, logID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// SearchReadings performs a LIKE-based search on quality labels of one
// session's readings, newest first. An empty sense matches all senses.
func (d *Database) SearchReadings(ctx context.Context, sessionID string, s model.Sense, term string, limit int) ([]model.Reading, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT r.id, r.sense, r.intensity, r.quality, r.location, r.created_at
        FROM readings r
        JOIN experience_logs l ON l.id = r.log_id
        WHERE l.session_id = ? AND (? = '' OR r.sense = ?) AND r.quality LIKE ?
        ORDER BY r.created_at DESC, r.rowid DESC
        LIMIT ?;
    `, sessionID, string(s), string(s), "%"+term+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReadings(rows rowScanner) ([]model.Reading, error) {
	var out []model.Reading
	for rows.Next() {
		var r model.Reading
		var s string
		if err := rows.Scan(&r.ID, &s, &r.Intensity, &r.Quality, &r.Location, &r.Timestamp); err != nil {
			return nil, err
		}
		r.Sense = model.Sense(s)
		out = append(out, r)
	}
	return out, rows.Err()
}
