// Package policy decides whether an actor may view or mutate a resource.
// It never touches storage: relationship facts are injected.
package policy

import (
	"context"

	"github.com/anonto42/playshelf/backend/internal/models"
)

// FollowFacts answers whether follower currently follows following.
type FollowFacts interface {
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
}

// FollowFactsFunc adapts a plain function to FollowFacts.
type FollowFactsFunc func(ctx context.Context, followerID, followingID uint) (bool, error)

func (f FollowFactsFunc) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return f(ctx, followerID, followingID)
}

// Resolver evaluates visibility and mutation rules.
type Resolver struct {
	Follows FollowFacts
}

func NewResolver(follows FollowFacts) *Resolver {
	return &Resolver{Follows: follows}
}

// CanView reports whether actor may read res. The follow predicate is only
// consulted for an authenticated non-owner looking at a FOLLOWERS_ONLY resource.
func (r *Resolver) CanView(ctx context.Context, actor models.Actor, res models.Resource) (bool, error) {
	if res.Visibility == models.VisibilityPublic {
		return true, nil
	}
	if actor.IsAnonymous() {
		return false, nil
	}
	if actor.ID == res.OwnerID {
		return true, nil
	}
	if res.Visibility != models.VisibilityFollowersOnly || r.Follows == nil {
		return false, nil
	}
	return r.Follows.Exists(ctx, actor.ID, res.OwnerID)
}

// CanMutate reports whether actor may change or delete res.
func (r *Resolver) CanMutate(actor models.Actor, res models.Resource) bool {
	if actor.IsAnonymous() {
		return false
	}
	if actor.ID == res.OwnerID {
		return true
	}
	return res.AdminMutable && actor.IsAdmin()
}
