package repositories

import (
	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Game{},
		&models.Review{},
		&models.Comment{},
		&models.CommentLike{},
		&models.ReviewLike{},
		&models.Playlist{},
		&models.PlaylistLike{},
		&models.Notification{},
	)
}
