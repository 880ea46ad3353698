package session

import (
	"context"
	"time"

	"employee_project/internal/domain"
	"employee_project/internal/utils"
)

// Store persists login sessions. Get returns domain.ErrNotFound for unknown or expired ids.
type Store interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}

const idLength = 32

// New builds a session for userID. A ttl of zero never expires.
func New(userID string, ttl time.Duration) (*domain.Session, error) {
	id, err := utils.GenerateRandomString(idLength)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &domain.Session{ID: id, UserID: userID, CreatedAt: now}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s, nil
}
