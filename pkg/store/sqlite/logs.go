package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/johncui/senses/pkg/model"
)

// InsertExperience archives one log entry and its readings in a single
// transaction. Entries without an integrated record are rejected.
func (d *Database) InsertExperience(ctx context.Context, sessionID string, entry model.LogEntry) error {
	rec := entry.Experience.Integrated
	if rec == nil {
		return fmt.Errorf("experience %s has no integrated record", entry.ID)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	envBytes, err := json.Marshal(entry.Environment)
	if err != nil {
		return fmt.Errorf("marshal environment: %w", err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO experience_logs(id, session_id, timestamp, environment, dominant_sense, overall_intensity, experience_quality)
        VALUES(?, ?, ?, ?, ?, ?, ?);
    `, entry.ID, sessionID, entry.Timestamp.UTC(), string(envBytes), string(rec.DominantSense), rec.OverallIntensity, rec.Quality); err != nil {
		return fmt.Errorf("insert experience: %w", err)
	}

	for _, r := range sortedReadings(entry.Experience.Senses) {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO readings(id, log_id, sense, intensity, quality, location, created_at)
            VALUES(?, ?, ?, ?, ?, ?, ?);
        `, id, entry.ID, string(r.Sense), r.Intensity, r.Quality, r.Location, r.Timestamp.UTC()); err != nil {
			return fmt.Errorf("insert reading: %w", err)
		}
	}
	return tx.Commit()
}

func sortedReadings(m map[model.Sense]model.Reading) []model.Reading {
	out := make([]model.Reading, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sense < out[j].Sense })
	return out
}

// RecentExperiences fetches the latest archived experiences for a session,
// newest first, each with its readings.
func (d *Database) RecentExperiences(ctx context.Context, sessionID string, limit int) ([]model.ArchivedExperience, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.QueryContext(ctx, `
        SELECT id, session_id, timestamp, environment, dominant_sense, overall_intensity, experience_quality
        FROM experience_logs
        WHERE session_id = ?
        ORDER BY timestamp DESC, rowid DESC
        LIMIT ?;
    `, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ArchivedExperience
	for rows.Next() {
		var e model.ArchivedExperience
		var env sql.NullString
		var dominant string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Timestamp, &env, &dominant, &e.OverallIntensity, &e.Quality); err != nil {
			return nil, err
		}
		e.DominantSense = model.Sense(dominant)
		if env.Valid && env.String != "" {
			_ = json.Unmarshal([]byte(env.String), &e.Environment)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		readings, err := d.ReadingsForLog(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Readings = readings
	}
	return out, nil
}

// CountExperiences returns how many experiences are archived for a session.
func (d *Database) CountExperiences(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM experience_logs WHERE session_id = ?;`, sessionID).Scan(&n)
	return n, err
}

// DeleteSession removes every archived experience for a session.
func (d *Database) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM experience_logs WHERE session_id = ?;`, sessionID)
	return err
}
