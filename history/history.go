package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/models"
)

// Recorder persists every interpreted prompt together with its outcome so
// analysts can audit what was asked and what came back.
type Recorder interface {
	Record(ctx context.Context, entry models.QueryHistoryEntry) error
	Recent(ctx context.Context, limit, offset int) ([]models.QueryHistoryEntry, int, error)
}

// Postgres stores history rows in the query_history table.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Record(ctx context.Context, entry models.QueryHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO query_history (id, user_id, prompt, intent, result_kind, result_rows, error, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := p.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Prompt, entry.Intent,
		entry.ResultKind, entry.ResultRows, entry.Error,
		entry.DurationSeconds, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert query history: %w", err)
	}
	return nil
}

// Recent returns the newest entries first along with the total row count.
func (p *Postgres) Recent(ctx context.Context, limit, offset int) ([]models.QueryHistoryEntry, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM query_history").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query history: %w", err)
	}

	query := `
		SELECT id, user_id, prompt, intent, result_kind, result_rows, error, duration_seconds, created_at
		FROM query_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := p.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []models.QueryHistoryEntry{}
	for rows.Next() {
		var e models.QueryHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Prompt, &e.Intent,
			&e.ResultKind, &e.ResultRows, &e.Error, &e.DurationSeconds, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan query history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate query history rows: %w", err)
	}
	return entries, total, nil
}
