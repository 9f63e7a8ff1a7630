package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a threaded comment on a review. A non-null DeletedAt marks a
// tombstone: the row stays for as long as replies reference it by ParentID.
type Comment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	AuthorID  uint           `json:"author_id" gorm:"not null;index"`
	ReviewID  uint           `json:"review_id" gorm:"not null;index"`
	ParentID  *uint          `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Parent *Comment `json:"-" gorm:"foreignKey:ParentID"`
	Review *Review  `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:RESTRICT"`
	Author *User    `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// CommentState is either ActiveComment or TombstonedComment.
type CommentState interface {
	commentState()
}

// ActiveComment is the only state in which a comment can be edited.
type ActiveComment struct {
	Content string
}

// TombstonedComment is a soft-deleted comment kept for thread integrity.
type TombstonedComment struct {
	DeletedAt time.Time
}

func (ActiveComment) commentState()     {}
func (TombstonedComment) commentState() {}

func (c *Comment) State() CommentState {
	if c.DeletedAt.Valid {
		return TombstonedComment{DeletedAt: c.DeletedAt.Time}
	}
	return ActiveComment{Content: c.Content}
}

// Edit replaces the content of an active comment.
func (a ActiveComment) Edit(content string) ActiveComment {
	a.Content = content
	return a
}

func (c *Comment) Resource() Resource {
	return Resource{OwnerID: c.AuthorID, Visibility: VisibilityPublic}
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	ParentID *uint  `json:"parent_id,omitempty" validate:"omitempty,min=1"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
