// internal/history/store.go
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"career-workers/internal/recommendation"

	"github.com/google/uuid"
)

// Record is one stored recommendation.
type Record struct {
	ID            uuid.UUID
	Channel       string
	UserID        string
	Label         recommendation.Label
	Strategy      string
	Source        string
	Skills        []string
	Interests     []string
	Qualification string
	CreatedAt     time.Time
}

// Store persists recommendation history.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Recent(ctx context.Context, userID string, limit int) ([]Record, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS career_recommendations (
	id            UUID PRIMARY KEY,
	channel       TEXT NOT NULL,
	user_id       TEXT NOT NULL DEFAULT '',
	label         TEXT NOT NULL,
	strategy      TEXT NOT NULL,
	source        TEXT NOT NULL,
	skills        JSONB NOT NULL,
	interests     JSONB NOT NULL,
	qualification TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS career_recommendations_user_idx
	ON career_recommendations (user_id, created_at DESC);`

// PostgresStore writes history rows through database/sql with lib/pq.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Migrate creates the history table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate career_recommendations: %w", err)
	}
	return nil
}

// Save assigns an ID and timestamp when missing and inserts the record.
func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}

	skills, err := json.Marshal(nonNil(rec.Skills))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	interests, err := json.Marshal(nonNil(rec.Interests))
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO career_recommendations
			(id, channel, user_id, label, strategy, source, skills, interests, qualification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID.String(), rec.Channel, rec.UserID, string(rec.Label), rec.Strategy, rec.Source,
		skills, interests, rec.Qualification, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert career recommendation: %w", err)
	}
	return nil
}

// Recent returns the newest records for a user, newest first.
func (s *PostgresStore) Recent(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, channel, user_id, label, strategy, source, skills, interests, qualification, created_at
		FROM career_recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query career recommendations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec               Record
			id, label         string
			skills, interests []byte
		)
		if err := rows.Scan(&id, &rec.Channel, &rec.UserID, &label, &rec.Strategy, &rec.Source,
			&skills, &interests, &rec.Qualification, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan career recommendation: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse id %q: %w", id, err)
		}
		rec.Label = recommendation.Label(label)
		if err := json.Unmarshal(skills, &rec.Skills); err != nil {
			rec.Skills = []string{}
		}
		if err := json.Unmarshal(interests, &rec.Interests); err != nil {
			rec.Interests = []string{}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
