package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// PlaylistRepository defines the interface for playlist data operations
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylistByID(ctx context.Context, id uint) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error)
	ListByOwners(ctx context.Context, ownerIDs []uint, visibilities []models.Visibility, page, limit int) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id uint, fields map[string]any) error
	DeletePlaylist(ctx context.Context, id uint) error
	GetGames(ctx context.Context, playlistID uint) ([]models.Game, error)
	AddGame(ctx context.Context, playlistID, gameID uint) error
	RemoveGame(ctx context.Context, playlistID, gameID uint) error
}

// PostgresPlaylistRepository implements PlaylistRepository for PostgreSQL
type PostgresPlaylistRepository struct {
	db *gorm.DB
}

func NewPostgresPlaylistRepository(db *gorm.DB) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{db: db}
}

func (r *PostgresPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return translate(r.db.WithContext(ctx).Create(playlist).Error, "playlist")
}

func (r *PostgresPlaylistRepository) GetPlaylistByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		return nil, translate(err, "playlist")
	}
	return &playlist, nil
}

func (r *PostgresPlaylistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&playlists).Error
	return playlists, translate(err, "playlist")
}

// ListByOwners pages through the playlists of several owners, newest first.
func (r *PostgresPlaylistRepository) ListByOwners(ctx context.Context, ownerIDs []uint, visibilities []models.Visibility, page, limit int) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if len(ownerIDs) == 0 {
		return playlists, nil
	}
	err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND visibility IN ?", ownerIDs, visibilities).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&playlists).Error
	return playlists, translate(err, "playlist")
}

func (r *PostgresPlaylistRepository) UpdatePlaylist(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "playlist")
	}
	if res.RowsAffected == 0 {
		return notFound("playlist")
	}
	return nil
}

func (r *PostgresPlaylistRepository) DeletePlaylist(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Playlist{}, id)
	if res.Error != nil {
		return translate(res.Error, "playlist")
	}
	if res.RowsAffected == 0 {
		return notFound("playlist")
	}
	return nil
}

func (r *PostgresPlaylistRepository) GetGames(ctx context.Context, playlistID uint) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).
		Joins("JOIN playlist_games ON playlist_games.game_id = games.id").
		Where("playlist_games.playlist_id = ?", playlistID).
		Order("games.id ASC").
		Find(&games).Error
	return games, translate(err, "game")
}

// AddGame writes the join row directly; the composite primary key of
// playlist_games reports a game that is already listed as a Conflict.
func (r *PostgresPlaylistRepository) AddGame(ctx context.Context, playlistID, gameID uint) error {
	err := r.db.WithContext(ctx).Table("playlist_games").
		Create(map[string]any{"playlist_id": playlistID, "game_id": gameID}).Error
	return translate(err, "playlist game")
}

func (r *PostgresPlaylistRepository) RemoveGame(ctx context.Context, playlistID, gameID uint) error {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM playlist_games WHERE playlist_id = ? AND game_id = ?", playlistID, gameID)
	if res.Error != nil {
		return translate(res.Error, "playlist game")
	}
	if res.RowsAffected == 0 {
		return notFound("playlist game")
	}
	return nil
}
