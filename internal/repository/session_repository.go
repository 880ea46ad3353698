package repository

import (
	"context"

	"employee_project/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SessionRepository keeps login sessions in the database when no Redis is configured.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return errors.Wrap(err, "create session")
	}
	return nil
}

// Get returns domain.ErrNotFound for unknown and expired sessions alike.
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "find session")
	}
	if session.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Destroy(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Session{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return Ping(ctx, r.db)
}
