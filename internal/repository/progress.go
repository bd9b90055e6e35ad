package repository

import (
	"context"

	"simtrack/internal/domain"
)

// ProgressRepository defines persistence operations for Progress records.
// Upsert must be atomic per (userID, simulationName): concurrent saves for the
// same pair yield exactly one row.
type ProgressRepository interface {
	Init(ctx context.Context) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Progress, error)
	Upsert(ctx context.Context, userID int64, simulationName string, completed int) error
}
