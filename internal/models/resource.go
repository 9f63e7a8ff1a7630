package models

// Visibility is the read tier of an owned collection.
type Visibility string

const (
	VisibilityPublic        Visibility = "PUBLIC"
	VisibilityPrivate       Visibility = "PRIVATE"
	VisibilityFollowersOnly Visibility = "FOLLOWERS_ONLY"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowersOnly:
		return true
	}
	return false
}

// Resource is what access checks need to know about a piece of content.
type Resource struct {
	OwnerID      uint
	Visibility   Visibility
	AdminMutable bool
}
