package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

func (s *HandlerTestSuite) TestPlaylists() {
	s.runCases([]testCase{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/playlists",
			body:   `{"name":"Backlog","visibility":"FOLLOWERS_ONLY"}`,
			actor:  &alice,
			mock: func(m mockSet) {
				req := models.CreatePlaylistRequest{Name: "Backlog", Visibility: models.VisibilityFollowersOnly}
				m.playlists.EXPECT().Create(gomock.Any(), alice, req).
					Return(&models.Playlist{ID: 3, OwnerID: alice.ID, Name: "Backlog", Visibility: models.VisibilityFollowersOnly, Type: models.PlaylistCustom}, nil)
			},
			wantCode: http.StatusCreated,
			check: func(t *testing.T, data json.RawMessage) {
				var p models.Playlist
				require.NoError(t, json.Unmarshal(data, &p))
				assert.Equal(t, models.VisibilityFollowersOnly, p.Visibility)
				assert.Equal(t, alice.ID, p.OwnerID)
			},
		},
		{
			name:     "unknown visibility",
			method:   http.MethodPost,
			path:     "/playlists",
			body:     `{"name":"Backlog","visibility":"FRIENDS"}`,
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "anonymous read of a private playlist",
			method: http.MethodGet,
			path:   "/playlists/3",
			mock: func(m mockSet) {
				m.playlists.EXPECT().Get(gomock.Any(), models.Anonymous, uint(3)).
					Return(nil, apperrors.New(apperrors.KindForbidden, "playlist is not visible"))
			},
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
		{
			name:   "detail",
			method: http.MethodGet,
			path:   "/playlists/3",
			actor:  &alice,
			mock: func(m mockSet) {
				m.playlists.EXPECT().Get(gomock.Any(), alice, uint(3)).
					Return(&models.PlaylistDetail{
						Playlist:   models.Playlist{ID: 3, Games: []models.Game{{ID: 1, Title: "Celeste"}}},
						LikesCount: 4,
						Liked:      true,
					}, nil)
			},
			wantCode: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var d models.PlaylistDetail
				require.NoError(t, json.Unmarshal(data, &d))
				assert.Equal(t, int64(4), d.LikesCount)
				assert.True(t, d.Liked)
				require.Len(t, d.Games, 1)
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/playlists/3",
			actor:  &alice,
			mock: func(m mockSet) {
				m.playlists.EXPECT().Delete(gomock.Any(), alice, uint(3)).Return(nil)
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:   "add a game twice",
			method: http.MethodPost,
			path:   "/playlists/3/games/1",
			actor:  &alice,
			mock: func(m mockSet) {
				m.playlists.EXPECT().AddGame(gomock.Any(), alice, uint(3), uint(1)).
					Return(apperrors.New(apperrors.KindConflict, "game already in playlist"))
			},
			wantCode: http.StatusConflict,
			wantKind: "CONFLICT",
		},
		{
			name:     "invalid game id",
			method:   http.MethodDelete,
			path:     "/playlists/3/games/0",
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "feed pagination defaults",
			method: http.MethodGet,
			path:   "/feed?limit=500",
			actor:  &alice,
			mock: func(m mockSet) {
				m.playlists.EXPECT().Feed(gomock.Any(), alice, 1, 10).Return([]models.Playlist{}, nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"playlists":[],"page":1,"limit":10}`,
		},
	})
}
