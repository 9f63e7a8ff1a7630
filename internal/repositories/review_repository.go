package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id uint) (*models.Review, error)
	ListByGame(ctx context.Context, gameID uint) ([]models.Review, error)
	UpdateReview(ctx context.Context, id uint, fields map[string]any) error
	DeleteReview(ctx context.Context, id uint) error
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error, "review")
}

func (r *PostgresReviewRepository) GetReviewByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

func (r *PostgresReviewRepository) ListByGame(ctx context.Context, gameID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Order("created_at DESC").Find(&reviews).Error
	return reviews, translate(err, "review")
}

func (r *PostgresReviewRepository) UpdateReview(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return notFound("review")
	}
	return nil
}

// DeleteReview removes the review and its like ledger rows. Comments restrict
// the delete, so a review that still has any, tombstones included, is a Conflict.
func (r *PostgresReviewRepository) DeleteReview(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return translate(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return notFound("review")
	}
	return nil
}
