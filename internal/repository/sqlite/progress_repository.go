package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"simtrack/internal/domain"
	"simtrack/internal/repository"
)

const createProgressTable = `
CREATE TABLE IF NOT EXISTS progress (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	simulation_name TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (user_id, simulation_name)
);
`

type ProgressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProgressTable); err != nil {
		return fmt.Errorf("create progress table: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Progress, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, simulation_name, completed, created_at, updated_at
FROM progress
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	records := []domain.Progress{}
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.SimulationName,
			&p.Completed,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return records, nil
}

// Upsert relies on the (user_id, simulation_name) uniqueness constraint so
// concurrent saves for the same pair can never both insert.
func (r *ProgressRepository) Upsert(ctx context.Context, userID int64, simulationName string, completed int) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO progress (user_id, simulation_name, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, simulation_name)
DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at`,
		userID,
		simulationName,
		completed,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}
