package service

import (
	"context"
	"fmt"
	"strings"

	"simtrack/internal/domain"
	"simtrack/internal/repository"
)

// ProgressService records and reports per-simulation completion state.
type ProgressService interface {
	List(ctx context.Context, userID int64) ([]domain.Progress, error)
	Save(ctx context.Context, userID int64, simulationName string, completed int) error
}

type progressService struct {
	progress repository.ProgressRepository
}

func NewProgressService(progress repository.ProgressRepository) ProgressService {
	return &progressService{progress: progress}
}

func (s *progressService) List(ctx context.Context, userID int64) ([]domain.Progress, error) {
	return s.progress.ListByUser(ctx, userID)
}

// Save overwrites any previous completion value for the pair; there is no
// history, a later save simply wins.
func (s *progressService) Save(ctx context.Context, userID int64, simulationName string, completed int) error {
	simulationName = strings.TrimSpace(simulationName)
	if simulationName == "" {
		return fmt.Errorf("%w: simulation_name is required", ErrValidation)
	}
	if completed < 0 {
		return fmt.Errorf("%w: completed must not be negative", ErrValidation)
	}
	return s.progress.Upsert(ctx, userID, simulationName, completed)
}
