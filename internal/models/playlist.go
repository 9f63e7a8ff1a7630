package models

import "time"

// PlaylistType classifies a playlist for display.
type PlaylistType string

const (
	PlaylistCustom    PlaylistType = "CUSTOM"
	PlaylistWishlist  PlaylistType = "WISHLIST"
	PlaylistFavorites PlaylistType = "FAVORITES"
	PlaylistPlayed    PlaylistType = "PLAYED"
)

// Playlist is an owned collection of games with a visibility tier.
type Playlist struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	OwnerID     uint         `json:"owner_id" gorm:"not null;index"`
	Visibility  Visibility   `json:"visibility" gorm:"type:varchar(20);not null;default:'PRIVATE';index"`
	Name        string       `json:"name" gorm:"size:100;not null"`
	Description string       `json:"description"`
	Type        PlaylistType `json:"type" gorm:"type:varchar(20);not null;default:'CUSTOM'"`
	CreatedAt   time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Games []Game `json:"games,omitempty" gorm:"many2many:playlist_games;constraint:OnDelete:CASCADE"`
	Owner *User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (p *Playlist) Resource() Resource {
	return Resource{OwnerID: p.OwnerID, Visibility: p.Visibility}
}

// PlaylistLike represents a like on a playlist
type PlaylistLike struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PlaylistID uint      `json:"playlist_id" gorm:"not null;index;uniqueIndex:idx_playlist_user_like"`
	UserID     uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_playlist_user_like"`
	CreatedAt  time.Time `json:"created_at"`

	Playlist *Playlist `json:"-" gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
}

// PlaylistDetail is a playlist enriched for one viewer.
type PlaylistDetail struct {
	Playlist
	LikesCount int64 `json:"likes_count"`
	Liked      bool  `json:"liked"`
}

type CreatePlaylistRequest struct {
	Name        string       `json:"name" validate:"required,min=1,max=100"`
	Description string       `json:"description" validate:"max=1000"`
	Visibility  Visibility   `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE FOLLOWERS_ONLY"`
	Type        PlaylistType `json:"type" validate:"omitempty,oneof=CUSTOM WISHLIST FAVORITES PLAYED"`
}

type UpdatePlaylistRequest struct {
	Name        string       `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=1000"`
	Visibility  Visibility   `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE FOLLOWERS_ONLY"`
	Type        PlaylistType `json:"type,omitempty" validate:"omitempty,oneof=CUSTOM WISHLIST FAVORITES PLAYED"`
}
