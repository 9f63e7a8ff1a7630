package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anonto42/playshelf/backend/internal/models"
	"github.com/anonto42/playshelf/backend/internal/policy"
	"github.com/anonto42/playshelf/backend/internal/repositories"
	"github.com/anonto42/playshelf/backend/internal/test/testdb"
)

type memAudit struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func (m *memAudit) Record(_ context.Context, e *models.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memAudit) ListByEntity(_ context.Context, entity string, id uint) ([]models.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AuditEvent{}
	for _, e := range m.events {
		if e.Entity == entity && e.EntityID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type fixture struct {
	db      *gorm.DB
	audit   *memAudit
	graph   *FollowGraph
	threads *ThreadIntegrityManager
	ledger  *LikeLedger
	lists   *PlaylistService
	reviews *ReviewService
	games   *GameService
	notes   *NotificationService

	game   *models.Game
	review *models.Review
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testdb.Open(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	logger := zap.NewNop()

	users := repositories.NewPostgresUserRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	reviews := repositories.NewPostgresReviewRepository(db)
	games := repositories.NewPostgresGameRepository(db)
	playlists := repositories.NewPostgresPlaylistRepository(db)
	likes := repositories.NewPostgresLikeRepository(db)
	audit := &memAudit{}

	notes := NewNotificationService(repositories.NewPostgresNotificationRepository(db), logger)
	graph := NewFollowGraph(follows, users, notes, logger)
	resolver := policy.NewResolver(graph)

	f := &fixture{
		db:      db,
		audit:   audit,
		graph:   graph,
		threads: NewThreadIntegrityManager(comments, reviews, resolver, audit, notes, logger),
		ledger:  NewLikeLedger(likes, NewTargetResolver(comments, reviews, playlists), resolver, notes, logger),
		lists:   NewPlaylistService(playlists, games, users, likes, graph, logger),
		reviews: NewReviewService(reviews, games, comments, resolver),
		games:   NewGameService(games),
		notes:   notes,
	}
	critic := f.user(t, "critic")
	f.game = testdb.SeedGame(t, db, "Disco Elysium")
	f.review = testdb.SeedReview(t, db, f.game.ID, critic.ID)
	return f
}

func (f *fixture) user(t *testing.T, name string) models.Actor {
	t.Helper()
	return testdb.SeedUser(t, f.db, name, models.RoleUser).Actor()
}

func (f *fixture) admin(t *testing.T, name string) models.Actor {
	t.Helper()
	return testdb.SeedUser(t, f.db, name, models.RoleAdmin).Actor()
}

func (f *fixture) comment(t *testing.T, author models.Actor, parent *models.Comment, content string) *models.Comment {
	t.Helper()
	in := models.CreateCommentRequest{Content: content}
	if parent != nil {
		in.ParentID = &parent.ID
	}
	c, err := f.threads.Create(context.Background(), author, f.review.ID, in)
	require.NoError(t, err)
	return c
}

func (f *fixture) playlist(t *testing.T, owner models.Actor, v models.Visibility) *models.Playlist {
	t.Helper()
	p, err := f.lists.Create(context.Background(), owner, models.CreatePlaylistRequest{Name: "list", Visibility: v})
	require.NoError(t, err)
	return p
}
