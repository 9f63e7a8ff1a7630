package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/anonto42/playshelf/backend/internal/handlers"
	"github.com/anonto42/playshelf/backend/internal/handlers/mocks"
	"github.com/anonto42/playshelf/backend/internal/middleware"
	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/validators"
)

const jwtSecret = "handler-test-secret"

var (
	alice = models.Actor{ID: 7, Role: models.RoleUser}
	root  = models.Actor{ID: 1, Role: models.RoleAdmin}
)

type mockSet struct {
	auth          *mocks.MockAuthService
	follows       *mocks.MockFollowService
	comments      *mocks.MockCommentService
	likes         *mocks.MockLikeService
	playlists     *mocks.MockPlaylistService
	reviews       *mocks.MockReviewService
	games         *mocks.MockGameService
	notifications *mocks.MockNotificationService
}

type result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type testCase struct {
	name     string
	method   string
	path     string
	body     string
	actor    *models.Actor
	mock     func(m mockSet)
	wantCode int
	wantKind string
	wantData string
	check    func(t *testing.T, data json.RawMessage)
}

type HandlerTestSuite struct {
	suite.Suite
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func newServer(t *testing.T, firebase bool) (*echo.Echo, mockSet) {
	ctrl := gomock.NewController(t)
	m := mockSet{
		auth:          mocks.NewMockAuthService(ctrl),
		follows:       mocks.NewMockFollowService(ctrl),
		comments:      mocks.NewMockCommentService(ctrl),
		likes:         mocks.NewMockLikeService(ctrl),
		playlists:     mocks.NewMockPlaylistService(ctrl),
		reviews:       mocks.NewMockReviewService(ctrl),
		games:         mocks.NewMockGameService(ctrl),
		notifications: mocks.NewMockNotificationService(ctrl),
	}
	m.auth.EXPECT().FirebaseEnabled().Return(firebase)

	e := echo.New()
	e.HTTPErrorHandler = handlers.ErrorHandler(zap.NewNop())
	e.Validator = validators.NewValidator()

	api := e.Group("/api/v1", middleware.OptionalJWT(jwtSecret))
	handlers.NewAuthHandler(m.auth).RegisterAuthRoutes(api.Group("/auth"))
	handlers.NewUserHandler(m.auth, m.follows).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(m.follows).RegisterFollowRoutes(api)
	handlers.NewCommentHandler(m.comments).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(m.likes).RegisterLikeRoutes(api)
	handlers.NewPlaylistHandler(m.playlists).RegisterPlaylistRoutes(api)
	handlers.NewFeedHandler(m.playlists).RegisterFeedRoutes(api)
	handlers.NewCatalogHandler(m.games, m.reviews).RegisterCatalogRoutes(api)
	handlers.NewNotificationHandler(m.notifications).RegisterNotificationRoutes(api)
	return e, m
}

func token(t *testing.T, actor models.Actor) string {
	claims := &models.JwtCustomClaims{
		UserID: actor.ID,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return s
}

func (s *HandlerTestSuite) runCases(testCases []testCase) {
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := s.T()
			server, m := newServer(t, false)
			if tc.mock != nil {
				tc.mock(m)
			}

			req := httptest.NewRequest(tc.method, "/api/v1"+tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tc.actor != nil {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, *tc.actor))
			}
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
			if tc.wantCode == http.StatusNoContent {
				return
			}
			var res result
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			if tc.wantKind != "" {
				require.False(t, res.Success)
				require.NotNil(t, res.Error)
				require.Equal(t, tc.wantKind, res.Error.Kind)
				return
			}
			require.True(t, res.Success)
			if tc.wantData != "" {
				require.JSONEq(t, tc.wantData, string(res.Data))
			}
			if tc.check != nil {
				tc.check(t, res.Data)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
