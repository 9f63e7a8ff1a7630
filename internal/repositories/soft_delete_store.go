package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
)

// SoftDeleteStore is the only way tombstone-capable rows are read or written.
// T must be a gorm model with a gorm.DeletedAt field; gorm's default scope then
// hides tombstones from every query that is not explicitly Unscoped.
type SoftDeleteStore[T any] struct {
	db           *gorm.DB
	entity       string
	parentColumn string
}

// NewSoftDeleteStore creates a store for T. parentColumn names the column that
// children use to reference a row; hard deletes are refused while it is in use.
func NewSoftDeleteStore[T any](db *gorm.DB, entity, parentColumn string) *SoftDeleteStore[T] {
	return &SoftDeleteStore[T]{db: db, entity: entity, parentColumn: parentColumn}
}

func (s *SoftDeleteStore[T]) with(tx *gorm.DB) *SoftDeleteStore[T] {
	return &SoftDeleteStore[T]{db: tx, entity: s.entity, parentColumn: s.parentColumn}
}

// Read returns the row only while it is not tombstoned.
func (s *SoftDeleteStore[T]) Read(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, s.entity)
	}
	return &v, nil
}

// ReadIncludingDeleted returns the row whatever its tombstone state.
// Integrity and audit code only.
func (s *SoftDeleteStore[T]) ReadIncludingDeleted(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := s.db.WithContext(ctx).Unscoped().First(&v, id).Error; err != nil {
		return nil, translate(err, s.entity)
	}
	return &v, nil
}

// List returns visible rows in creation order.
func (s *SoftDeleteStore[T]) List(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Scopes(scopes...).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, s.entity)
	}
	return out, nil
}

func (s *SoftDeleteStore[T]) Create(ctx context.Context, v *T) error {
	return translate(s.db.WithContext(ctx).Create(v).Error, s.entity)
}

// Update changes the given columns of a visible row.
func (s *SoftDeleteStore[T]) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, s.entity)
	}
	if res.RowsAffected == 0 {
		return notFound(s.entity)
	}
	return nil
}

// SoftDelete stamps deleted_at. Children are untouched and an existing
// tombstone is left as it is.
func (s *SoftDeleteStore[T]) SoftDelete(ctx context.Context, id uint) error {
	if _, err := s.ReadIncludingDeleted(ctx, id); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error, s.entity)
}

// HardDelete removes the row for good. It fails with Conflict while any row,
// tombstoned or not, still references it as a parent.
func (s *SoftDeleteStore[T]) HardDelete(ctx context.Context, id uint) error {
	n, err := s.CountReferencing(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.Newf(apperrors.KindConflict, "%s %d still has %d replies", s.entity, id, n)
	}
	res := s.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error, s.entity)
	}
	if res.RowsAffected == 0 {
		return notFound(s.entity)
	}
	return nil
}

// CountReferencing counts rows pointing at id through the parent column,
// tombstones included.
func (s *SoftDeleteStore[T]) CountReferencing(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Unscoped().Model(new(T)).Where(s.parentColumn+" = ?", id).Count(&n).Error
	if err != nil {
		return 0, translate(err, s.entity)
	}
	return n, nil
}

// LockForUpdate reads a visible row and holds an exclusive lock on it until
// the surrounding transaction ends.
func (s *SoftDeleteStore[T]) LockForUpdate(ctx context.Context, id uint) (*T, error) {
	return s.lock(ctx, id, "UPDATE")
}

// LockForShare reads a visible row and blocks concurrent deletes of it until
// the surrounding transaction ends.
func (s *SoftDeleteStore[T]) LockForShare(ctx context.Context, id uint) (*T, error) {
	return s.lock(ctx, id, "SHARE")
}

func (s *SoftDeleteStore[T]) lock(ctx context.Context, id uint, strength string) (*T, error) {
	var v T
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: strength}).First(&v, id).Error
	if err != nil {
		return nil, translate(err, s.entity)
	}
	return &v, nil
}

// Transaction runs fn against a store bound to a single database transaction.
func (s *SoftDeleteStore[T]) Transaction(ctx context.Context, fn func(*SoftDeleteStore[T]) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.with(tx))
	})
	return translate(err, s.entity)
}
