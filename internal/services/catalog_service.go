package services

import (
	"context"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// GameService is the minimal catalog that reviews and playlists point at.
type GameService struct {
	games repositories.GameRepository
}

func NewGameService(games repositories.GameRepository) *GameService {
	return &GameService{games: games}
}

func (s *GameService) Create(ctx context.Context, actor models.Actor, in models.CreateGameRequest) (*models.Game, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, apperrors.New(apperrors.KindForbidden, "admin role required")
	}
	game := &models.Game{Title: in.Title, Description: in.Description}
	err := s.games.CreateGame(ctx, game)
	if apperrors.IsConflict(err) {
		return nil, apperrors.New(apperrors.KindConflict, "a game with this title already exists")
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) Get(ctx context.Context, id uint) (*models.Game, error) {
	return s.games.GetGameByID(ctx, id)
}

func (s *GameService) List(ctx context.Context, page, limit int) ([]models.Game, int64, error) {
	return s.games.ListGames(ctx, page, limit)
}

// ReviewService manages reviews. Unlike comments and playlists, reviews can be
// moderated by administrators.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	games    repositories.GameRepository
	comments repositories.CommentRepository
	policy   *policy.Resolver
}

func NewReviewService(
	reviews repositories.ReviewRepository,
	games repositories.GameRepository,
	comments repositories.CommentRepository,
	resolver *policy.Resolver,
) *ReviewService {
	return &ReviewService{reviews: reviews, games: games, comments: comments, policy: resolver}
}

func (s *ReviewService) Create(ctx context.Context, actor models.Actor, gameID uint, in models.CreateReviewRequest) (*models.Review, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	if _, err := s.games.GetGameByID(ctx, gameID); err != nil {
		return nil, err
	}
	review := &models.Review{GameID: gameID, AuthorID: actor.ID, Rating: in.Rating, Content: in.Content}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviews.GetReviewByID(ctx, id)
}

func (s *ReviewService) ListByGame(ctx context.Context, gameID uint) ([]models.Review, error) {
	if _, err := s.games.GetGameByID(ctx, gameID); err != nil {
		return nil, err
	}
	return s.reviews.ListByGame(ctx, gameID)
}

func (s *ReviewService) Update(ctx context.Context, actor models.Actor, id uint, in models.UpdateReviewRequest) (*models.Review, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Rating != 0 {
		fields["rating"] = in.Rating
	}
	if in.Content != "" {
		fields["content"] = in.Content
	}
	if len(fields) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "nothing to update")
	}
	if err := s.reviews.UpdateReview(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.reviews.GetReviewByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	// Any comment row, tombstones included, pins the review.
	n, err := s.comments.CountByReview(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.Newf(apperrors.KindConflict, "review still has %d comments", n)
	}
	err = s.reviews.DeleteReview(ctx, id)
	if apperrors.IsConflict(err) {
		return apperrors.New(apperrors.KindConflict, "review still has comments")
	}
	return err
}

func (s *ReviewService) authorize(ctx context.Context, actor models.Actor, id uint) error {
	if actor.IsAnonymous() {
		return errUnauthenticated
	}
	review, err := s.reviews.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanMutate(actor, review.Resource()) {
		return apperrors.New(apperrors.KindForbidden, "only the author or an admin can change this review")
	}
	return nil
}
