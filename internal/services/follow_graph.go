package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// FollowGraph manages directed follow edges between users.
type FollowGraph struct {
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications *NotificationService
	logger        *zap.Logger
}

func NewFollowGraph(
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *FollowGraph {
	return &FollowGraph{follows: follows, users: users, notifications: notifications, logger: logger}
}

// Follow creates the edge actor -> targetID. Duplicates are detected by the
// storage constraint, not by a prior lookup.
func (g *FollowGraph) Follow(ctx context.Context, actor models.Actor, targetID uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	if actor.ID == targetID {
		return apperrors.New(apperrors.KindValidation, "cannot follow yourself")
	}
	follower, err := g.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if _, err := g.users.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	err = g.follows.CreateFollow(ctx, &models.Follow{FollowerID: actor.ID, FollowingID: targetID})
	if apperrors.IsConflict(err) {
		return apperrors.New(apperrors.KindConflict, "already following this user")
	}
	if err != nil {
		return err
	}

	g.notifications.Notify(ctx, &models.Notification{
		Type:        models.NotificationFollow,
		ActorID:     actor.ID,
		RecipientID: targetID,
		TargetID:    actor.ID,
		TargetType:  "user",
		Message:     fmt.Sprintf("%s started following you", follower.Name),
	})
	return nil
}

func (g *FollowGraph) Unfollow(ctx context.Context, actor models.Actor, targetID uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	return g.follows.DeleteFollow(ctx, actor.ID, targetID)
}

// Exists satisfies policy.FollowFacts.
func (g *FollowGraph) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return g.follows.Exists(ctx, followerID, followingID)
}

func (g *FollowGraph) Followers(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	if _, err := g.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := g.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compact(users), nil
}

func (g *FollowGraph) Following(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	if _, err := g.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := g.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compact(users), nil
}

func (g *FollowGraph) Counts(ctx context.Context, userID uint) (models.FollowCounts, error) {
	return g.follows.GetCounts(ctx, userID)
}

// FollowingIDs lists the accounts userID follows.
func (g *FollowGraph) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return g.follows.GetFollowingIDs(ctx, userID)
}

func compact(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out
}
