package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// GameRepository defines the interface for game data operations
type GameRepository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, id uint) (*models.Game, error)
	ListGames(ctx context.Context, page, limit int) ([]models.Game, int64, error)
}

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *gorm.DB
}

func NewPostgresGameRepository(db *gorm.DB) *PostgresGameRepository {
	return &PostgresGameRepository{db: db}
}

func (r *PostgresGameRepository) CreateGame(ctx context.Context, game *models.Game) error {
	return translate(r.db.WithContext(ctx).Create(game).Error, "game")
}

func (r *PostgresGameRepository) GetGameByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, translate(err, "game")
	}
	return &game, nil
}

func (r *PostgresGameRepository) ListGames(ctx context.Context, page, limit int) ([]models.Game, int64, error) {
	var games []models.Game
	var total int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "game")
	}
	err := db.Order("title ASC").Offset((page - 1) * limit).Limit(limit).Find(&games).Error
	return games, total, translate(err, "game")
}
