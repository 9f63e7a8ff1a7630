package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// LikeRepository defines the interface for the like ledgers. Each target kind
// has its own table with a unique (target, user) index.
type LikeRepository interface {
	Insert(ctx context.Context, kind models.TargetKind, targetID, userID uint) error
	Delete(ctx context.Context, kind models.TargetKind, targetID, userID uint) error
	Exists(ctx context.Context, kind models.TargetKind, targetID, userID uint) (bool, error)
	Count(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

type ledger struct {
	model  any
	column string
}

func ledgerFor(kind models.TargetKind) (ledger, error) {
	switch kind {
	case models.TargetComment:
		return ledger{model: &models.CommentLike{}, column: "comment_id"}, nil
	case models.TargetReview:
		return ledger{model: &models.ReviewLike{}, column: "review_id"}, nil
	case models.TargetPlaylist:
		return ledger{model: &models.PlaylistLike{}, column: "playlist_id"}, nil
	}
	return ledger{}, apperrors.Newf(apperrors.KindValidation, "unknown like target %q", kind)
}

func newLedgerRow(kind models.TargetKind, targetID, userID uint) any {
	switch kind {
	case models.TargetComment:
		return &models.CommentLike{CommentID: targetID, UserID: userID}
	case models.TargetReview:
		return &models.ReviewLike{ReviewID: targetID, UserID: userID}
	default:
		return &models.PlaylistLike{PlaylistID: targetID, UserID: userID}
	}
}

// Insert records the like. The unique index turns a second insert for the
// same pair into a Conflict, including under concurrent callers. A target
// removed after it was resolved fails its foreign key and is NotFound.
func (r *PostgresLikeRepository) Insert(ctx context.Context, kind models.TargetKind, targetID, userID uint) error {
	if _, err := ledgerFor(kind); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Create(newLedgerRow(kind, targetID, userID)).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Wrap(apperrors.KindNotFound, err, string(kind)+" not found")
	}
	return translate(err, "like")
}

func (r *PostgresLikeRepository) Delete(ctx context.Context, kind models.TargetKind, targetID, userID uint) error {
	l, err := ledgerFor(kind)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where(l.column+" = ? AND user_id = ?", targetID, userID).Delete(l.model)
	if res.Error != nil {
		return translate(res.Error, "like")
	}
	if res.RowsAffected == 0 {
		return notFound("like")
	}
	return nil
}

func (r *PostgresLikeRepository) Exists(ctx context.Context, kind models.TargetKind, targetID, userID uint) (bool, error) {
	l, err := ledgerFor(kind)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(l.model).Where(l.column+" = ? AND user_id = ?", targetID, userID).Count(&n).Error
	if err != nil {
		return false, translate(err, "like")
	}
	return n > 0, nil
}

// Count is always computed from the ledger rows; there is no cached counter.
func (r *PostgresLikeRepository) Count(ctx context.Context, kind models.TargetKind, targetID uint) (int64, error) {
	l, err := ledgerFor(kind)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(l.model).Where(l.column+" = ?", targetID).Count(&n).Error; err != nil {
		return 0, translate(err, "like")
	}
	return n, nil
}
