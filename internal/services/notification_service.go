package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// NotificationService writes and reads user notifications. Writes triggered by
// other operations are best effort: a failure is logged and swallowed.
type NotificationService struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify never notifies an actor about their own action.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if n.RecipientID == 0 || n.RecipientID == n.ActorID {
		return
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("failed to create notification",
			zap.String("type", n.Type),
			zap.Uint("recipient_id", n.RecipientID),
			zap.Error(err))
	}
}

func (s *NotificationService) List(ctx context.Context, actor models.Actor, page, limit int) ([]models.Notification, int64, error) {
	if actor.IsAnonymous() {
		return nil, 0, errUnauthenticated
	}
	return s.repo.GetByRecipientID(ctx, actor.ID, page, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor models.Actor) (int64, error) {
	if actor.IsAnonymous() {
		return 0, errUnauthenticated
	}
	return s.repo.GetUnreadCount(ctx, actor.ID)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor models.Actor, id uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	return s.repo.MarkAsRead(ctx, id, actor.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor models.Actor) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	return s.repo.MarkAllAsRead(ctx, actor.ID)
}

var errUnauthenticated = apperrors.New(apperrors.KindUnauthorized, "authentication required")
