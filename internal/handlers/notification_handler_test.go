package handlers_test

import (
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

func (s *HandlerTestSuite) TestNotifications() {
	s.runCases([]testCase{
		{
			name:   "unread count",
			method: http.MethodGet,
			path:   "/notifications/unread-count",
			actor:  &alice,
			mock: func(m mockSet) {
				m.notifications.EXPECT().UnreadCount(gomock.Any(), alice).Return(int64(3), nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"unread_count":3}`,
		},
		{
			name:   "someone else's notification",
			method: http.MethodPut,
			path:   "/notifications/4/read",
			actor:  &alice,
			mock: func(m mockSet) {
				m.notifications.EXPECT().MarkRead(gomock.Any(), alice, uint(4)).
					Return(apperrors.New(apperrors.KindNotFound, "notification not found"))
			},
			wantCode: http.StatusNotFound,
			wantKind: "NOT_FOUND",
		},
		{
			name:   "mark all read",
			method: http.MethodPut,
			path:   "/notifications/read-all",
			actor:  &alice,
			mock: func(m mockSet) {
				m.notifications.EXPECT().MarkAllRead(gomock.Any(), alice).Return(nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"read":true}`,
		},
		{
			name:     "anonymous",
			method:   http.MethodGet,
			path:     "/notifications",
			wantCode: http.StatusUnauthorized,
			wantKind: "UNAUTHORIZED",
		},
	})
}

func (s *HandlerTestSuite) TestFollow() {
	s.runCases([]testCase{
		{
			name:   "follow",
			method: http.MethodPost,
			path:   "/users/9/follow",
			actor:  &alice,
			mock: func(m mockSet) {
				m.follows.EXPECT().Follow(gomock.Any(), alice, uint(9)).Return(nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"following":true}`,
		},
		{
			name:   "follow self",
			method: http.MethodPost,
			path:   "/users/7/follow",
			actor:  &alice,
			mock: func(m mockSet) {
				m.follows.EXPECT().Follow(gomock.Any(), alice, uint(7)).
					Return(apperrors.New(apperrors.KindValidation, "cannot follow yourself"))
			},
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "counts are public",
			method: http.MethodGet,
			path:   "/users/9/follow-counts",
			mock: func(m mockSet) {
				m.follows.EXPECT().Counts(gomock.Any(), uint(9)).Return(models.FollowCounts{Followers: 2, Following: 1}, nil)
			},
			wantCode: http.StatusOK,
		},
	})
}
