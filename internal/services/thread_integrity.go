package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

const auditEntityComment = "comment"

// DeleteOutcome tells the caller what happened to a deleted comment.
type DeleteOutcome string

const (
	OutcomeTombstoned DeleteOutcome = "tombstoned"
	OutcomeRemoved    DeleteOutcome = "removed"
)

type DeleteResult struct {
	CommentID uint          `json:"comment_id"`
	Outcome   DeleteOutcome `json:"outcome"`
}

// CommentAudit is the full history of a comment as seen by an administrator.
type CommentAudit struct {
	Comment    *models.Comment     `json:"comment,omitempty"`
	Tombstoned bool                `json:"tombstoned"`
	Removed    bool                `json:"removed"`
	Replies    int64               `json:"replies"`
	Events     []models.AuditEvent `json:"events"`
}

// ThreadIntegrityManager owns the comment lifecycle. A comment is Active until
// it is deleted; with replies it becomes a permanent tombstone, without replies
// its row is removed.
type ThreadIntegrityManager struct {
	comments      repositories.CommentRepository
	reviews       repositories.ReviewRepository
	policy        *policy.Resolver
	audit         repositories.AuditRepository
	notifications *NotificationService
	logger        *zap.Logger
}

func NewThreadIntegrityManager(
	comments repositories.CommentRepository,
	reviews repositories.ReviewRepository,
	resolver *policy.Resolver,
	audit repositories.AuditRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *ThreadIntegrityManager {
	return &ThreadIntegrityManager{
		comments:      comments,
		reviews:       reviews,
		policy:        resolver,
		audit:         audit,
		notifications: notifications,
		logger:        logger,
	}
}

// Create adds a comment to a review, optionally as a reply. The parent is
// share-locked so that it cannot be removed while the reply is inserted.
func (m *ThreadIntegrityManager) Create(ctx context.Context, actor models.Actor, reviewID uint, in models.CreateCommentRequest) (*models.Comment, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	review, err := m.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: actor.ID,
		ReviewID: reviewID,
		ParentID: in.ParentID,
	}
	recipient := review.AuthorID
	err = m.comments.Transaction(ctx, func(tx repositories.CommentRepository) error {
		if in.ParentID != nil {
			parent, err := tx.LockForShare(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent.ReviewID != reviewID {
				return apperrors.New(apperrors.KindValidation, "parent comment belongs to a different review")
			}
			recipient = parent.AuthorID
		}
		return tx.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	m.notifications.Notify(ctx, &models.Notification{
		Type:        models.NotificationReply,
		ActorID:     actor.ID,
		RecipientID: recipient,
		TargetID:    comment.ID,
		TargetType:  string(models.TargetComment),
		Message:     "replied to your " + replyTarget(in.ParentID),
	})
	return comment, nil
}

func replyTarget(parentID *uint) string {
	if parentID != nil {
		return "comment"
	}
	return "review"
}

func (m *ThreadIntegrityManager) Get(ctx context.Context, id uint) (*models.Comment, error) {
	return m.comments.Read(ctx, id)
}

func (m *ThreadIntegrityManager) ListByReview(ctx context.Context, reviewID uint) ([]models.Comment, error) {
	if _, err := m.reviews.GetReviewByID(ctx, reviewID); err != nil {
		return nil, err
	}
	return m.comments.ListByReview(ctx, reviewID)
}

// Update edits the content of an Active comment under a row lock. A tombstone
// is reported as Forbidden, a removed comment as NotFound.
func (m *ThreadIntegrityManager) Update(ctx context.Context, id uint, actor models.Actor, content string) (*models.Comment, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}

	var updated *models.Comment
	err := m.comments.Transaction(ctx, func(tx repositories.CommentRepository) error {
		comment, err := tx.LockForUpdate(ctx, id)
		if apperrors.IsNotFound(err) {
			// Tombstones never come back, so this answer cannot go stale.
			if _, err := tx.ReadIncludingDeleted(ctx, id); err == nil {
				return apperrors.New(apperrors.KindForbidden, "comment has been deleted")
			}
			return err
		}
		if err != nil {
			return err
		}

		var edited models.ActiveComment
		switch state := comment.State().(type) {
		case models.TombstonedComment:
			return apperrors.New(apperrors.KindForbidden, "comment has been deleted")
		case models.ActiveComment:
			if !m.policy.CanMutate(actor, comment.Resource()) {
				return apperrors.New(apperrors.KindForbidden, "only the author can edit this comment")
			}
			edited = state.Edit(content)
		}

		if err := tx.Update(ctx, id, map[string]any{"content": edited.Content}); err != nil {
			return err
		}
		updated, err = tx.Read(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	m.record(ctx, updated, models.AuditEdited, actor, 0)
	return updated, nil
}

// Delete decides between tombstone and removal while holding a row lock on
// the comment, so that no reply can slip in between the count and the delete.
func (m *ThreadIntegrityManager) Delete(ctx context.Context, id uint, actor models.Actor) (DeleteResult, error) {
	if actor.IsAnonymous() {
		return DeleteResult{}, errUnauthenticated
	}

	result := DeleteResult{CommentID: id}
	var (
		snapshot *models.Comment
		replies  int64
	)
	err := m.comments.Transaction(ctx, func(tx repositories.CommentRepository) error {
		comment, err := tx.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !m.policy.CanMutate(actor, comment.Resource()) {
			return apperrors.New(apperrors.KindForbidden, "only the author can delete this comment")
		}
		snapshot = comment

		replies, err = tx.CountReferencing(ctx, id)
		if err != nil {
			return err
		}
		if replies > 0 {
			result.Outcome = OutcomeTombstoned
			return tx.SoftDelete(ctx, id)
		}
		result.Outcome = OutcomeRemoved
		return tx.HardDelete(ctx, id)
	})
	if err != nil {
		return DeleteResult{}, err
	}

	action := models.AuditRemoved
	if result.Outcome == OutcomeTombstoned {
		action = models.AuditTombstoned
	}
	m.record(ctx, snapshot, action, actor, replies)
	return result, nil
}

// Audit returns a comment regardless of its tombstone state together with its
// recorded lifecycle events. A removed comment has no row left, so only its
// events are returned. Administrators only.
func (m *ThreadIntegrityManager) Audit(ctx context.Context, actor models.Actor, id uint) (*CommentAudit, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "admin role required")
	}
	comment, err := m.comments.ReadIncludingDeleted(ctx, id)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	events, evErr := m.audit.ListByEntity(ctx, auditEntityComment, id)
	if evErr != nil {
		return nil, evErr
	}
	if err != nil {
		if len(events) == 0 {
			return nil, err
		}
		return &CommentAudit{Removed: true, Events: events}, nil
	}

	replies, err := m.comments.CountReferencing(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CommentAudit{
		Comment:    comment,
		Tombstoned: comment.DeletedAt.Valid,
		Replies:    replies,
		Events:     events,
	}, nil
}

func (m *ThreadIntegrityManager) record(ctx context.Context, c *models.Comment, action string, actor models.Actor, replies int64) {
	event := &models.AuditEvent{
		Entity:     auditEntityComment,
		EntityID:   c.ID,
		Action:     action,
		ActorID:    actor.ID,
		ReviewID:   c.ReviewID,
		ParentID:   c.ParentID,
		ChildCount: replies,
		At:         time.Now().UTC(),
	}
	if err := m.audit.Record(ctx, event); err != nil {
		m.logger.Warn("failed to record comment audit event",
			zap.Uint("comment_id", c.ID),
			zap.String("action", action),
			zap.Error(err))
	}
}
