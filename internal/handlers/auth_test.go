package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/services"
)

func (s *HandlerTestSuite) TestAuth() {
	s.runCases([]testCase{
		{
			name:   "signup",
			method: http.MethodPost,
			path:   "/auth/signup",
			body:   `{"name":"Alice","email":"alice@example.com","password":"hunter22!"}`,
			mock: func(m mockSet) {
				req := models.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "hunter22!"}
				m.auth.EXPECT().Signup(gomock.Any(), req).
					Return(&services.AuthResult{Token: "tok", User: &models.User{ID: 7, Name: "Alice"}}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "signup with a bad email",
			method:   http.MethodPost,
			path:     "/auth/signup",
			body:     `{"name":"Alice","email":"alice","password":"hunter22!"}`,
			wantCode: http.StatusBadRequest,
			wantKind: "VALIDATION",
		},
		{
			name:   "wrong password",
			method: http.MethodPost,
			path:   "/auth/signin",
			body:   `{"email":"alice@example.com","password":"nope"}`,
			mock: func(m mockSet) {
				m.auth.EXPECT().Signin(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.New(apperrors.KindUnauthorized, "invalid email or password"))
			},
			wantCode: http.StatusUnauthorized,
			wantKind: "UNAUTHORIZED",
		},
		{
			name:     "firebase login disabled",
			method:   http.MethodPost,
			path:     "/auth/firebase-login",
			body:     `{"idToken":"x"}`,
			wantCode: http.StatusNotFound,
			wantKind: "NOT_FOUND",
		},
		{
			name:     "forged token",
			method:   http.MethodGet,
			path:     "/profile",
			actor:    &models.Actor{ID: 0},
			wantCode: http.StatusUnauthorized,
			wantKind: "UNAUTHORIZED",
		},
		{
			name:   "profile",
			method: http.MethodGet,
			path:   "/profile",
			actor:  &alice,
			mock: func(m mockSet) {
				m.auth.EXPECT().Profile(gomock.Any(), alice).Return(&models.User{ID: 7, Name: "Alice"}, nil)
			},
			wantCode: http.StatusOK,
		},
	})
}

func (s *HandlerTestSuite) TestFirebaseLoginEnabled() {
	t := s.T()
	server, m := newServer(t, true)
	m.auth.EXPECT().FirebaseLogin(gomock.Any(), models.FirebaseLoginRequest{IDToken: "id-token"}).
		Return(&services.AuthResult{Token: "tok"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/firebase-login", bytes.NewBufferString(`{"idToken":"id-token"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.JSONEq(t, `{"token":"tok","user":null}`, string(res.Data))
}
