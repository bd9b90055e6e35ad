package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"simtrack/internal/domain"
	"simtrack/internal/repository"
)

// SessionService binds opaque tokens to users. Tokens are server-side state;
// the client only ever carries them back in a cookie.
type SessionService interface {
	Start(ctx context.Context, user *domain.User) (string, error)
	Current(ctx context.Context, token string) (*domain.User, error)
	End(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionService struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	ttl      time.Duration
}

func NewSessionService(sessions repository.SessionRepository, users repository.UserRepository, ttl time.Duration) SessionService {
	return &sessionService{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
	}
}

func (s *sessionService) Start(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

func (s *sessionService) Current(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// user row gone from under the session; treat as logged out
			_ = s.sessions.Delete(ctx, token)
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// End is idempotent: ending an unknown or already-ended session is not an error.
func (s *sessionService) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *sessionService) DeleteExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now())
}
