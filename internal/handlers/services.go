package handlers

import (
	"context"

	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/services"
)

//go:generate mockgen -source=./services.go -destination=./mocks/services.mock.go -package=mocks

type AuthService interface {
	FirebaseEnabled() bool
	Signup(ctx context.Context, req models.SignupRequest) (*services.AuthResult, error)
	Signin(ctx context.Context, req models.SigninRequest) (*services.AuthResult, error)
	FirebaseLogin(ctx context.Context, req models.FirebaseLoginRequest) (*services.AuthResult, error)
	Profile(ctx context.Context, actor models.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor models.Actor, req models.UpdateUserRequest) (*models.User, error)
}

type FollowService interface {
	Follow(ctx context.Context, actor models.Actor, targetID uint) error
	Unfollow(ctx context.Context, actor models.Actor, targetID uint) error
	Followers(ctx context.Context, userID uint) ([]models.UserCompact, error)
	Following(ctx context.Context, userID uint) ([]models.UserCompact, error)
	Counts(ctx context.Context, userID uint) (models.FollowCounts, error)
}

type CommentService interface {
	Create(ctx context.Context, actor models.Actor, reviewID uint, in models.CreateCommentRequest) (*models.Comment, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID uint) ([]models.Comment, error)
	Update(ctx context.Context, id uint, actor models.Actor, content string) (*models.Comment, error)
	Delete(ctx context.Context, id uint, actor models.Actor) (services.DeleteResult, error)
	Audit(ctx context.Context, actor models.Actor, id uint) (*services.CommentAudit, error)
}

type LikeService interface {
	Like(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) error
	Unlike(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) error
	Status(ctx context.Context, actor models.Actor, kind models.TargetKind, id uint) (models.LikeStatus, error)
}

type PlaylistService interface {
	Create(ctx context.Context, actor models.Actor, in models.CreatePlaylistRequest) (*models.Playlist, error)
	Get(ctx context.Context, actor models.Actor, id uint) (*models.PlaylistDetail, error)
	ListByOwner(ctx context.Context, actor models.Actor, ownerID uint) ([]models.Playlist, error)
	Update(ctx context.Context, actor models.Actor, id uint, in models.UpdatePlaylistRequest) (*models.Playlist, error)
	Delete(ctx context.Context, actor models.Actor, id uint) error
	AddGame(ctx context.Context, actor models.Actor, id, gameID uint) error
	RemoveGame(ctx context.Context, actor models.Actor, id, gameID uint) error
	Feed(ctx context.Context, actor models.Actor, page, limit int) ([]models.Playlist, error)
}

type ReviewService interface {
	Create(ctx context.Context, actor models.Actor, gameID uint, in models.CreateReviewRequest) (*models.Review, error)
	Get(ctx context.Context, id uint) (*models.Review, error)
	ListByGame(ctx context.Context, gameID uint) ([]models.Review, error)
	Update(ctx context.Context, actor models.Actor, id uint, in models.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor models.Actor, id uint) error
}

type GameService interface {
	Create(ctx context.Context, actor models.Actor, in models.CreateGameRequest) (*models.Game, error)
	Get(ctx context.Context, id uint) (*models.Game, error)
	List(ctx context.Context, page, limit int) ([]models.Game, int64, error)
}

type NotificationService interface {
	List(ctx context.Context, actor models.Actor, page, limit int) ([]models.Notification, int64, error)
	UnreadCount(ctx context.Context, actor models.Actor) (int64, error)
	MarkRead(ctx context.Context, actor models.Actor, id uint) error
	MarkAllRead(ctx context.Context, actor models.Actor) error
}
