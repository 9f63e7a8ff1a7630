// Package testdb opens throwaway in-memory databases for package tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/repositories"
)

// Open returns a migrated sqlite database that lives for the duration of t.
// Foreign keys are enforced and constraint errors are translated the same way
// as on PostgreSQL. There is a single connection, so concurrent callers are
// serialised.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// SeedUser inserts a user with the given role.
func SeedUser(t testing.TB, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func SeedGame(t testing.TB, db *gorm.DB, title string) *models.Game {
	t.Helper()
	g := &models.Game{Title: title}
	require.NoError(t, db.Create(g).Error)
	return g
}

func SeedReview(t testing.TB, db *gorm.DB, gameID, authorID uint) *models.Review {
	t.Helper()
	r := &models.Review{GameID: gameID, AuthorID: authorID, Rating: 8, Content: "solid"}
	require.NoError(t, db.Create(r).Error)
	return r
}
