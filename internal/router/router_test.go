package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

func newServer(t *testing.T) *echo.Echo {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e := echo.New()
	SetupMiddleware(e, zap.NewNop())
	require.NoError(t, SetupRoutes(context.Background(), e, Deps{
		Postgres:    db,
		JWTSecret:   "router-test",
		AdminEmails: []string{"root@example.com"},
		Logger:      zap.NewNop(),
	}))
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, token, body string) (int, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func signup(t *testing.T, e *echo.Echo, name string) string {
	body := fmt.Sprintf(`{"name":%q,"email":"%s@example.com","password":"correct-horse"}`, name, name)
	code, env := call(t, e, http.MethodPost, "/api/v1/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func TestHealth(t *testing.T) {
	e := newServer(t)
	code, env := call(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestFirebaseLoginNotRegisteredWithoutCredentials(t *testing.T) {
	e := newServer(t)
	code, env := call(t, e, http.MethodPost, "/api/v1/auth/firebase-login", "", `{"idToken":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Kind)
}

func TestFollowersOnlyPlaylist(t *testing.T) {
	e := newServer(t)
	owner := signup(t, e, "owner")
	fan := signup(t, e, "fan")

	code, env := call(t, e, http.MethodPost, "/api/v1/playlists", owner, `{"name":"Co-op nights","visibility":"FOLLOWERS_ONLY"}`)
	require.Equal(t, http.StatusCreated, code)
	var playlist struct {
		ID      uint `json:"id"`
		OwnerID uint `json:"owner_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &playlist))
	path := fmt.Sprintf("/api/v1/playlists/%d", playlist.ID)

	code, env = call(t, e, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Kind)

	code, _ = call(t, e, http.MethodGet, path, fan, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", playlist.OwnerID), fan, "")
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, e, http.MethodGet, path, fan, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = call(t, e, http.MethodGet, "/api/v1/feed", fan, "")
	require.Equal(t, http.StatusOK, code)
	var feed struct {
		Playlists []struct {
			ID uint `json:"id"`
		} `json:"playlists"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed.Playlists, 1)
	assert.Equal(t, playlist.ID, feed.Playlists[0].ID)

	code, _ = call(t, e, http.MethodPut, path, fan, `{"name":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAdminOnlyGameCreation(t *testing.T) {
	e := newServer(t)
	user := signup(t, e, "player")
	admin := signup(t, e, "root")

	code, env := call(t, e, http.MethodPost, "/api/v1/games", user, `{"title":"Outer Wilds"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Kind)

	code, _ = call(t, e, http.MethodPost, "/api/v1/games", admin, `{"title":"Outer Wilds"}`)
	assert.Equal(t, http.StatusCreated, code)

	code, env = call(t, e, http.MethodPost, "/api/v1/games", admin, `{"title":"Outer Wilds"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Kind)
}
