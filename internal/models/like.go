package models

import "time"

// TargetKind names the kind of resource a like points at.
type TargetKind string

const (
	TargetComment  TargetKind = "comment"
	TargetReview   TargetKind = "review"
	TargetPlaylist TargetKind = "playlist"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetComment, TargetReview, TargetPlaylist:
		return true
	}
	return false
}

// LikeStatus is the ledger view of one target for one actor.
type LikeStatus struct {
	Kind     TargetKind `json:"kind"`
	TargetID uint       `json:"target_id"`
	Count    int64      `json:"likes_count"`
	Liked    bool       `json:"liked"`
}

// ReviewLike represents a like on a review
type ReviewLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ReviewID  uint      `json:"review_id" gorm:"not null;index;uniqueIndex:idx_review_user_like"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_review_user_like"`
	CreatedAt time.Time `json:"created_at"`

	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}
