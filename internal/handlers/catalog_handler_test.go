package handlers_test

import (
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

func (s *HandlerTestSuite) TestCatalog() {
	s.runCases([]testCase{
		{
			name:   "list games",
			method: http.MethodGet,
			path:   "/games?page=2&limit=1",
			mock: func(m mockSet) {
				m.games.EXPECT().List(gomock.Any(), 2, 1).Return([]models.Game{}, int64(3), nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"games":[],"pagination":{"currentPage":2,"totalPages":3,"totalItems":3,"itemsPerPage":1,"hasNextPage":true,"hasPreviousPage":true}}`,
		},
		{
			name:     "create game as a regular user",
			method:   http.MethodPost,
			path:     "/games",
			body:     `{"title":"Hades"}`,
			actor:    &alice,
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
		{
			name:   "duplicate title",
			method: http.MethodPost,
			path:   "/games",
			body:   `{"title":"Hades"}`,
			actor:  &root,
			mock: func(m mockSet) {
				m.games.EXPECT().Create(gomock.Any(), root, models.CreateGameRequest{Title: "Hades"}).
					Return(nil, apperrors.New(apperrors.KindConflict, "game already exists"))
			},
			wantCode: http.StatusConflict,
			wantKind: "CONFLICT",
		},
		{
			name:     "rating out of range",
			method:   http.MethodPost,
			path:     "/games/1/reviews",
			body:     `{"rating":11,"content":"too good"}`,
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "review created",
			method: http.MethodPost,
			path:   "/games/1/reviews",
			body:   `{"rating":9,"content":"great"}`,
			actor:  &alice,
			mock: func(m mockSet) {
				m.reviews.EXPECT().Create(gomock.Any(), alice, uint(1), models.CreateReviewRequest{Rating: 9, Content: "great"}).
					Return(&models.Review{ID: 2, GameID: 1, AuthorID: alice.ID, Rating: 9, Content: "great"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:   "admin removes a review",
			method: http.MethodDelete,
			path:   "/reviews/2",
			actor:  &root,
			mock: func(m mockSet) {
				m.reviews.EXPECT().Delete(gomock.Any(), root, uint(2)).Return(nil)
			},
			wantCode: http.StatusNoContent,
		},
	})
}
