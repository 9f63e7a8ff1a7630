package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/test/testdb"
)

func TestPlaylistService_Private(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.user(t, "u1")
	u2 := f.user(t, "u2")
	admin := f.admin(t, "root")
	p := f.playlist(t, u1, models.VisibilityPrivate)

	_, err := f.lists.Get(ctx, u2, p.ID)
	assert.True(t, apperrors.IsForbidden(err))
	_, err = f.lists.Get(ctx, admin, p.ID)
	assert.True(t, apperrors.IsForbidden(err))
	_, err = f.lists.Get(ctx, models.Anonymous, p.ID)
	assert.True(t, apperrors.IsForbidden(err))

	got, err := f.lists.Get(ctx, u1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.lists.Get(ctx, u1, 9999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPlaylistService_FollowersOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.user(t, "u1")
	u2 := f.user(t, "u2")
	u3 := f.user(t, "u3")
	p := f.playlist(t, u1, models.VisibilityFollowersOnly)

	require.NoError(t, f.graph.Follow(ctx, u2, u1.ID))

	_, err := f.lists.Get(ctx, u2, p.ID)
	assert.NoError(t, err)
	_, err = f.lists.Get(ctx, u3, p.ID)
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, f.graph.Unfollow(ctx, u2, u1.ID))
	_, err = f.lists.Get(ctx, u2, p.ID)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestPlaylistService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")

	p, err := f.lists.Create(ctx, owner, models.CreatePlaylistRequest{Name: "later"})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, p.Visibility)
	assert.Equal(t, models.PlaylistCustom, p.Type)
	assert.Equal(t, owner.ID, p.OwnerID)

	_, err = f.lists.Create(ctx, models.Anonymous, models.CreatePlaylistRequest{Name: "nope"})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestPlaylistService_OwnerOnlyMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	other := f.user(t, "other")
	admin := f.admin(t, "root")
	p := f.playlist(t, owner, models.VisibilityPublic)

	rename := models.UpdatePlaylistRequest{Name: "renamed"}
	_, err := f.lists.Update(ctx, other, p.ID, rename)
	assert.True(t, apperrors.IsForbidden(err))
	_, err = f.lists.Update(ctx, admin, p.ID, rename)
	assert.True(t, apperrors.IsForbidden(err))
	assert.True(t, apperrors.IsForbidden(f.lists.Delete(ctx, admin, p.ID)))

	updated, err := f.lists.Update(ctx, owner, p.ID, models.UpdatePlaylistRequest{Visibility: models.VisibilityPrivate})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, updated.Visibility)

	_, err = f.lists.Get(ctx, other, p.ID)
	assert.True(t, apperrors.IsForbidden(err), "visibility change applies on the next read")

	_, err = f.lists.Update(ctx, owner, p.ID, models.UpdatePlaylistRequest{})
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, f.lists.Delete(ctx, owner, p.ID))
	_, err = f.lists.Get(ctx, owner, p.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPlaylistService_GamesAndLikes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	p := f.playlist(t, owner, models.VisibilityPublic)
	second := testdb.SeedGame(t, f.db, "Pentiment")

	require.NoError(t, f.lists.AddGame(ctx, owner, p.ID, f.game.ID))
	require.NoError(t, f.lists.AddGame(ctx, owner, p.ID, second.ID))
	assert.True(t, apperrors.IsConflict(f.lists.AddGame(ctx, owner, p.ID, second.ID)))
	assert.True(t, apperrors.IsNotFound(f.lists.AddGame(ctx, owner, p.ID, 999)))
	assert.True(t, apperrors.IsForbidden(f.lists.AddGame(ctx, fan, p.ID, f.game.ID)))

	require.NoError(t, f.ledger.Like(ctx, fan, models.TargetPlaylist, p.ID))

	detail, err := f.lists.Get(ctx, fan, p.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Games, 2)
	assert.EqualValues(t, 1, detail.LikesCount)
	assert.True(t, detail.Liked)

	require.NoError(t, f.lists.RemoveGame(ctx, owner, p.ID, f.game.ID))
	assert.True(t, apperrors.IsNotFound(f.lists.RemoveGame(ctx, owner, p.ID, f.game.ID)))

	detail, err = f.lists.Get(ctx, models.Anonymous, p.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Games, 1)
	assert.False(t, detail.Liked)
}

func TestPlaylistService_ListByOwnerAndFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	stranger := f.user(t, "stranger")

	public := f.playlist(t, owner, models.VisibilityPublic)
	followers := f.playlist(t, owner, models.VisibilityFollowersOnly)
	f.playlist(t, owner, models.VisibilityPrivate)

	require.NoError(t, f.graph.Follow(ctx, fan, owner.ID))

	ids := func(ps []models.Playlist) []uint {
		out := []uint{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	got, err := f.lists.ListByOwner(ctx, stranger, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{public.ID}, ids(got))

	got, err = f.lists.ListByOwner(ctx, fan, owner.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{public.ID, followers.ID}, ids(got))

	got, err = f.lists.ListByOwner(ctx, owner, owner.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = f.lists.ListByOwner(ctx, owner, 999)
	assert.True(t, apperrors.IsNotFound(err))

	feed, err := f.lists.Feed(ctx, fan, 1, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{public.ID, followers.ID}, ids(feed))

	feed, err = f.lists.Feed(ctx, stranger, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = f.lists.Feed(ctx, models.Anonymous, 1, 10)
	assert.True(t, apperrors.IsUnauthorized(err))
}
