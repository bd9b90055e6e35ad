package repository

import (
	"context"
	"time"

	"simtrack/internal/domain"
)

// SessionRepository defines persistence operations for Sessions. Sessions live
// in the database so they survive process restarts.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
