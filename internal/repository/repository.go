package repository

import (
	"context"

	"employee_project/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is CRUD over one table of T. Ids are uuids; anything else is reported as not found.
type Repository[T any] struct {
	db   *gorm.DB
	kind string
}

func NewRepository[T any](db *gorm.DB, kind string) *Repository[T] {
	return &Repository[T]{db: db, kind: kind}
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var record T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, r.wrap(err, "find")
	}
	return &record, nil
}

func (r *Repository[T]) FindAll(ctx context.Context) ([]*T, error) {
	var records []*T
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, r.wrap(err, "list")
	}
	return records, nil
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return r.wrap(r.db.WithContext(ctx).Create(record).Error, "create")
}

// Update sets only the given columns and returns the stored record after the change.
func (r *Repository[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var record T
	res := r.db.WithContext(ctx).Model(&record).Clauses(clause.Returning{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, r.wrap(res.Error, "update")
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Delete removes the record and returns it as it was right before removal.
func (r *Repository[T]) Delete(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var record T
	res := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&record)
	if res.Error != nil {
		return nil, r.wrap(res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (r *Repository[T]) wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return errors.Wrapf(err, "%s %s", op, r.kind)
}
