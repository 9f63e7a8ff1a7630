package models

import "time"

// Review is a user's rating of a game. Admins may moderate any review.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GameID    uint      `json:"game_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Game   *Game `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Author *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (r *Review) Resource() Resource {
	return Resource{OwnerID: r.AuthorID, Visibility: VisibilityPublic, AdminMutable: true}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
	Content string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
}
