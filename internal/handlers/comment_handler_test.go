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
	"github.com/anonto42/playshelf/backend/internal/services"
)

func (s *HandlerTestSuite) TestCreateComment() {
	s.runCases([]testCase{
		{
			name:   "reply created",
			method: http.MethodPost,
			path:   "/reviews/3/comments",
			body:   `{"content":"agreed","parent_id":11}`,
			actor:  &alice,
			mock: func(m mockSet) {
				req := models.CreateCommentRequest{Content: "agreed", ParentID: ptr(uint(11))}
				m.comments.EXPECT().Create(gomock.Any(), alice, uint(3), req).
					Return(&models.Comment{ID: 12, Content: "agreed", AuthorID: alice.ID, ReviewID: 3, ParentID: ptr(uint(11))}, nil)
			},
			wantCode: http.StatusCreated,
			check: func(t *testing.T, data json.RawMessage) {
				var c models.Comment
				require.NoError(t, json.Unmarshal(data, &c))
				assert.Equal(t, uint(12), c.ID)
				assert.Equal(t, "agreed", c.Content)
				require.NotNil(t, c.ParentID)
				assert.Equal(t, uint(11), *c.ParentID)
			},
		},
		{
			name:     "empty content rejected before the service",
			method:   http.MethodPost,
			path:     "/reviews/3/comments",
			body:     `{"content":""}`,
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/reviews/3/comments",
			body:     `{"content":`,
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:     "anonymous",
			method:   http.MethodPost,
			path:     "/reviews/3/comments",
			body:     `{"content":"hi"}`,
			wantCode: http.StatusUnauthorized,
			wantKind: "UNAUTHORIZED",
		},
		{
			name:   "parent on another review",
			method: http.MethodPost,
			path:   "/reviews/3/comments",
			body:   `{"content":"hi","parent_id":4}`,
			actor:  &alice,
			mock: func(m mockSet) {
				m.comments.EXPECT().Create(gomock.Any(), alice, uint(3), gomock.Any()).
					Return(nil, apperrors.New(apperrors.KindValidation, "parent comment belongs to another review"))
			},
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
	})
}

func (s *HandlerTestSuite) TestGetComment() {
	s.runCases([]testCase{
		{
			name:     "invalid id",
			method:   http.MethodGet,
			path:     "/comments/abc",
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "missing comment",
			method: http.MethodGet,
			path:   "/comments/9",
			mock: func(m mockSet) {
				m.comments.EXPECT().Get(gomock.Any(), uint(9)).
					Return(nil, apperrors.New(apperrors.KindNotFound, "comment not found"))
			},
			wantCode: http.StatusNotFound,
			wantKind: "NOT_FOUND",
		},
		{
			name:   "storage fault is hidden",
			method: http.MethodGet,
			path:   "/comments/9",
			mock: func(m mockSet) {
				m.comments.EXPECT().Get(gomock.Any(), uint(9)).
					Return(nil, apperrors.Internal(assert.AnError, "failed to load comment"))
			},
			wantCode: http.StatusInternalServerError,
			wantKind: "INTERNAL",
		},
	})
}

func (s *HandlerTestSuite) TestUpdateComment() {
	s.runCases([]testCase{
		{
			name:   "tombstone cannot be edited",
			method: http.MethodPut,
			path:   "/comments/5",
			body:   `{"content":"revived"}`,
			actor:  &alice,
			mock: func(m mockSet) {
				m.comments.EXPECT().Update(gomock.Any(), uint(5), alice, "revived").
					Return(nil, apperrors.New(apperrors.KindForbidden, "comment has been deleted"))
			},
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
		{
			name:     "content too long",
			method:   http.MethodPut,
			path:     "/comments/5",
			body:     `{"content":"` + longText(501) + `"}`,
			actor:    &alice,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
	})
}

func (s *HandlerTestSuite) TestDeleteComment() {
	s.runCases([]testCase{
		{
			name:   "tombstoned",
			method: http.MethodDelete,
			path:   "/comments/5",
			actor:  &alice,
			mock: func(m mockSet) {
				m.comments.EXPECT().Delete(gomock.Any(), uint(5), alice).
					Return(services.DeleteResult{CommentID: 5, Outcome: services.OutcomeTombstoned}, nil)
			},
			wantCode: http.StatusOK,
			wantData: `{"comment_id":5,"outcome":"tombstoned"}`,
		},
		{
			name:   "not the author",
			method: http.MethodDelete,
			path:   "/comments/5",
			actor:  &alice,
			mock: func(m mockSet) {
				m.comments.EXPECT().Delete(gomock.Any(), uint(5), alice).
					Return(services.DeleteResult{}, apperrors.New(apperrors.KindForbidden, "only the author can delete this comment"))
			},
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
	})
}

func (s *HandlerTestSuite) TestAuditComment() {
	s.runCases([]testCase{
		{
			name:     "regular user",
			method:   http.MethodGet,
			path:     "/admin/comments/5/audit",
			actor:    &alice,
			wantCode: http.StatusForbidden,
			wantKind: "FORBIDDEN",
		},
		{
			name:   "admin",
			method: http.MethodGet,
			path:   "/admin/comments/5/audit",
			actor:  &root,
			mock: func(m mockSet) {
				m.comments.EXPECT().Audit(gomock.Any(), root, uint(5)).
					Return(&services.CommentAudit{Comment: &models.Comment{ID: 5}, Tombstoned: true, Replies: 2}, nil)
			},
			wantCode: http.StatusOK,
			check: func(t *testing.T, data json.RawMessage) {
				var audit services.CommentAudit
				require.NoError(t, json.Unmarshal(data, &audit))
				assert.True(t, audit.Tombstoned)
				assert.Equal(t, int64(2), audit.Replies)
			},
		},
	})
}

func longText(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
