package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations.
// Every method goes through the soft-delete store, so ordinary reads never
// see tombstones.
type CommentRepository interface {
	Read(ctx context.Context, id uint) (*models.Comment, error)
	ReadIncludingDeleted(ctx context.Context, id uint) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID uint) ([]models.Comment, error)
	ListReplies(ctx context.Context, parentID uint) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	CountReferencing(ctx context.Context, id uint) (int64, error)
	CountByReview(ctx context.Context, reviewID uint) (int64, error)
	LockForUpdate(ctx context.Context, id uint) (*models.Comment, error)
	LockForShare(ctx context.Context, id uint) (*models.Comment, error)
	Transaction(ctx context.Context, fn func(repo CommentRepository) error) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	*SoftDeleteStore[models.Comment]
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{
		SoftDeleteStore: NewSoftDeleteStore[models.Comment](db, "comment", "parent_id"),
	}
}

// ListByReview returns the visible comments of a review in thread order.
func (r *PostgresCommentRepository) ListByReview(ctx context.Context, reviewID uint) ([]models.Comment, error) {
	return r.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("review_id = ?", reviewID)
	})
}

// ListReplies returns the visible direct replies of a comment.
func (r *PostgresCommentRepository) ListReplies(ctx context.Context, parentID uint) ([]models.Comment, error) {
	return r.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_id = ?", parentID)
	})
}

// CountByReview counts every comment row on a review, tombstones included.
func (r *PostgresCommentRepository) CountByReview(ctx context.Context, reviewID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.Comment{}).Where("review_id = ?", reviewID).Count(&n).Error
	if err != nil {
		return 0, translate(err, "comment")
	}
	return n, nil
}

func (r *PostgresCommentRepository) Transaction(ctx context.Context, fn func(repo CommentRepository) error) error {
	return r.SoftDeleteStore.Transaction(ctx, func(s *SoftDeleteStore[models.Comment]) error {
		return fn(&PostgresCommentRepository{SoftDeleteStore: s})
	})
}
