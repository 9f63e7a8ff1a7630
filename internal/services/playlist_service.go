package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// PlaylistService serves owned game collections. Reads are gated by the
// playlist's visibility tier, writes by ownership alone.
type PlaylistService struct {
	playlists repositories.PlaylistRepository
	games     repositories.GameRepository
	users     repositories.UserRepository
	likes     repositories.LikeRepository
	graph     *FollowGraph
	logger    *zap.Logger
}

func NewPlaylistService(
	playlists repositories.PlaylistRepository,
	games repositories.GameRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	graph *FollowGraph,
	logger *zap.Logger,
) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		games:     games,
		users:     users,
		likes:     likes,
		graph:     graph,
		logger:    logger,
	}
}

// resolver returns a policy resolver whose follow lookups are memoised for
// the duration of one call.
func (s *PlaylistService) resolver() *policy.Resolver {
	seen := map[[2]uint]bool{}
	return policy.NewResolver(policy.FollowFactsFunc(func(ctx context.Context, a, b uint) (bool, error) {
		key := [2]uint{a, b}
		if v, ok := seen[key]; ok {
			return v, nil
		}
		v, err := s.graph.Exists(ctx, a, b)
		if err != nil {
			return false, err
		}
		seen[key] = v
		return v, nil
	}))
}

func (s *PlaylistService) Create(ctx context.Context, actor models.Actor, in models.CreatePlaylistRequest) (*models.Playlist, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	p := &models.Playlist{
		OwnerID:     actor.ID,
		Name:        in.Name,
		Description: in.Description,
		Visibility:  in.Visibility,
		Type:        in.Type,
	}
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPrivate
	}
	if p.Type == "" {
		p.Type = models.PlaylistCustom
	}
	if err := s.playlists.CreatePlaylist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a playlist the actor may view, with its games and like status.
func (s *PlaylistService) Get(ctx context.Context, actor models.Actor, id uint) (*models.PlaylistDetail, error) {
	p, err := s.viewable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	detail := &models.PlaylistDetail{Playlist: *p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := s.playlists.GetGames(gctx, id)
		detail.Games = games
		return err
	})
	g.Go(func() error {
		n, err := s.likes.Count(gctx, models.TargetPlaylist, id)
		detail.LikesCount = n
		return err
	})
	if !actor.IsAnonymous() {
		g.Go(func() error {
			liked, err := s.likes.Exists(gctx, models.TargetPlaylist, id, actor.ID)
			detail.Liked = liked
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// ListByOwner returns the owner's playlists that the actor may view.
func (s *PlaylistService) ListByOwner(ctx context.Context, actor models.Actor, ownerID uint) ([]models.Playlist, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	all, err := s.playlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.filterViewable(ctx, s.resolver(), actor, all)
}

func (s *PlaylistService) Update(ctx context.Context, actor models.Actor, id uint, in models.UpdatePlaylistRequest) (*models.Playlist, error) {
	if _, err := s.mutable(ctx, actor, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Visibility != "" {
		fields["visibility"] = in.Visibility
	}
	if in.Type != "" {
		fields["type"] = in.Type
	}
	if len(fields) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "nothing to update")
	}
	if err := s.playlists.UpdatePlaylist(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.playlists.GetPlaylistByID(ctx, id)
}

func (s *PlaylistService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if _, err := s.mutable(ctx, actor, id); err != nil {
		return err
	}
	return s.playlists.DeletePlaylist(ctx, id)
}

func (s *PlaylistService) AddGame(ctx context.Context, actor models.Actor, id, gameID uint) error {
	if _, err := s.mutable(ctx, actor, id); err != nil {
		return err
	}
	if _, err := s.games.GetGameByID(ctx, gameID); err != nil {
		return err
	}
	err := s.playlists.AddGame(ctx, id, gameID)
	if apperrors.IsConflict(err) {
		return apperrors.New(apperrors.KindConflict, "game is already in this playlist")
	}
	return err
}

func (s *PlaylistService) RemoveGame(ctx context.Context, actor models.Actor, id, gameID uint) error {
	if _, err := s.mutable(ctx, actor, id); err != nil {
		return err
	}
	return s.playlists.RemoveGame(ctx, id, gameID)
}

// Feed lists the newest playlists of the accounts the actor follows. The
// follow set is loaded once and answers every visibility check.
func (s *PlaylistService) Feed(ctx context.Context, actor models.Actor, page, limit int) ([]models.Playlist, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	ids, err := s.graph.FollowingIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	following := make(map[uint]bool, len(ids))
	for _, id := range ids {
		following[id] = true
	}

	candidates, err := s.playlists.ListByOwners(ctx, ids,
		[]models.Visibility{models.VisibilityPublic, models.VisibilityFollowersOnly}, page, limit)
	if err != nil {
		return nil, err
	}
	resolver := policy.NewResolver(policy.FollowFactsFunc(func(_ context.Context, a, b uint) (bool, error) {
		return a == actor.ID && following[b], nil
	}))
	return s.filterViewable(ctx, resolver, actor, candidates)
}

func (s *PlaylistService) viewable(ctx context.Context, actor models.Actor, id uint) (*models.Playlist, error) {
	p, err := s.playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.resolver().CanView(ctx, actor, p.Resource())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.New(apperrors.KindForbidden, "you cannot view this playlist")
	}
	return p, nil
}

func (s *PlaylistService) mutable(ctx context.Context, actor models.Actor, id uint) (*models.Playlist, error) {
	if actor.IsAnonymous() {
		return nil, errUnauthenticated
	}
	p, err := s.playlists.GetPlaylistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.resolver().CanMutate(actor, p.Resource()) {
		return nil, apperrors.New(apperrors.KindForbidden, "only the owner can change this playlist")
	}
	return p, nil
}

func (s *PlaylistService) filterViewable(ctx context.Context, resolver *policy.Resolver, actor models.Actor, in []models.Playlist) ([]models.Playlist, error) {
	out := make([]models.Playlist, 0, len(in))
	for i := range in {
		ok, err := resolver.CanView(ctx, actor, in[i].Resource())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, in[i])
		}
	}
	return out, nil
}
