package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// TargetResolver describes a like target for access checks. Absent targets and
// tombstoned comments are NotFound.
type TargetResolver interface {
	Resolve(ctx context.Context, kind models.TargetKind, id uint) (models.Resource, error)
}

type storeTargetResolver struct {
	comments  repositories.CommentRepository
	reviews   repositories.ReviewRepository
	playlists repositories.PlaylistRepository
}

func NewTargetResolver(
	comments repositories.CommentRepository,
	reviews repositories.ReviewRepository,
	playlists repositories.PlaylistRepository,
) TargetResolver {
	return &storeTargetResolver{comments: comments, reviews: reviews, playlists: playlists}
}

func (r *storeTargetResolver) Resolve(ctx context.Context, kind models.TargetKind, id uint) (models.Resource, error) {
	switch kind {
	case models.TargetComment:
		c, err := r.comments.Read(ctx, id)
		if err != nil {
			return models.Resource{}, err
		}
		return c.Resource(), nil
	case models.TargetReview:
		rv, err := r.reviews.GetReviewByID(ctx, id)
		if err != nil {
			return models.Resource{}, err
		}
		return rv.Resource(), nil
	case models.TargetPlaylist:
		p, err := r.playlists.GetPlaylistByID(ctx, id)
		if err != nil {
			return models.Resource{}, err
		}
		return p.Resource(), nil
	}
	return models.Resource{}, apperrors.Newf(apperrors.KindValidation, "unknown like target %q", kind)
}

// LikeLedger records at most one like per (actor, target).
type LikeLedger struct {
	likes         repositories.LikeRepository
	targets       TargetResolver
	policy        *policy.Resolver
	notifications *NotificationService
	logger        *zap.Logger
}

func NewLikeLedger(
	likes repositories.LikeRepository,
	targets TargetResolver,
	resolver *policy.Resolver,
	notifications *NotificationService,
	logger *zap.Logger,
) *LikeLedger {
	return &LikeLedger{likes: likes, targets: targets, policy: resolver, notifications: notifications, logger: logger}
}

func (l *LikeLedger) Like(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	res, err := l.targets.Resolve(ctx, kind, id)
	if err != nil {
		return err
	}
	ok, err := l.policy.CanView(ctx, actor, res)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Newf(apperrors.KindForbidden, "you cannot view this %s", kind)
	}

	err = l.likes.Insert(ctx, kind, id, actor.ID)
	if apperrors.IsConflict(err) {
		return apperrors.Newf(apperrors.KindConflict, "%s already liked", kind)
	}
	if err != nil {
		return err
	}

	l.notifications.Notify(ctx, &models.Notification{
		Type:        models.NotificationLike,
		ActorID:     actor.ID,
		RecipientID: res.OwnerID,
		TargetID:    id,
		TargetType:  string(kind),
		Message:     "liked your " + string(kind),
	})
	return nil
}

// Unlike removes the actor's like. Visibility is not rechecked, so a like on
// content that has since become hidden can still be withdrawn.
func (l *LikeLedger) Unlike(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	if _, err := l.targets.Resolve(ctx, kind, id); err != nil {
		return err
	}
	return l.likes.Delete(ctx, kind, id, actor.ID)
}

func (l *LikeLedger) Status(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) (models.LikeStatus, error) {
	status := models.LikeStatus{Kind: kind, TargetID: id}
	res, err := l.targets.Resolve(ctx, kind, id)
	if err != nil {
		return status, err
	}
	ok, err := l.policy.CanView(ctx, actor, res)
	if err != nil {
		return status, err
	}
	if !ok {
		return status, apperrors.Newf(apperrors.KindForbidden, "you cannot view this %s", kind)
	}

	if status.Count, err = l.likes.Count(ctx, kind, id); err != nil {
		return status, err
	}
	if !actor.IsAnonymous() {
		if status.Liked, err = l.likes.Exists(ctx, kind, id, actor.ID); err != nil {
			return status, err
		}
	}
	return status, nil
}
