package repository

import (
	"context"

	"employee_project/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	*Repository[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[domain.User](db, "user")}
}

// FindByUsername returns the oldest user with the given name; usernames are not unique.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("created_at").First(&user).Error; err != nil {
		return nil, r.wrap(err, "find")
	}
	return &user, nil
}
