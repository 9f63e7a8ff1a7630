package handlers_test

import (
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

func (s *HandlerTestSuite) TestLikes() {
	s.runCases([]testCase{
		{
			name:   "like a review",
			method: http.MethodPost,
			path:   "/reviews/4/likes",
			actor:  &alice,
			mock: func(m mockSet) {
				gomock.InOrder(
					m.likes.EXPECT().Like(gomock.Any(), alice, models.TargetReview, uint(4)).Return(nil),
					m.likes.EXPECT().Status(gomock.Any(), alice, models.TargetReview, uint(4)).
						Return(models.LikeStatus{Kind: models.TargetReview, TargetID: 4, Count: 1, Liked: true}, nil),
				)
			},
			wantCode: http.StatusCreated,
			wantData: `{"kind":"review","target_id":4,"likes_count":1,"liked":true}`,
		},
		{
			name:   "duplicate like",
			method: http.MethodPost,
			path:   "/comments/8/likes",
			actor:  &alice,
			mock: func(m mockSet) {
				m.likes.EXPECT().Like(gomock.Any(), alice, models.TargetComment, uint(8)).
					Return(apperrors.New(apperrors.KindConflict, "already liked"))
			},
			wantCode: http.StatusConflict,
			wantKind: "CONFLICT",
		},
		{
			name:   "unlike a playlist never liked",
			method: http.MethodDelete,
			path:   "/playlists/2/likes",
			actor:  &alice,
			mock: func(m mockSet) {
				m.likes.EXPECT().Unlike(gomock.Any(), alice, models.TargetPlaylist, uint(2)).
					Return(apperrors.New(apperrors.KindNotFound, "like not found"))
			},
			wantCode: http.StatusNotFound,
			wantKind: "NOT_FOUND",
		},
		{
			name:   "anonymous status of a hidden playlist",
			method: http.MethodGet,
			path:   "/playlists/2/likes",
			mock: func(m mockSet) {
				m.likes.EXPECT().Status(gomock.Any(), models.Anonymous, models.TargetPlaylist, uint(2)).
					Return(models.LikeStatus{}, apperrors.New(apperrors.KindForbidden, "playlist is not visible"))
			},
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
		{
			name:     "anonymous like",
			method:   http.MethodPost,
			path:     "/playlists/2/likes",
			wantCode: http.StatusUnauthorized,
			wantKind: "UNAUTHORIZED",
		},
	})
}
