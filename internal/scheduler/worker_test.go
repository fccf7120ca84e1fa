package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"social-service/internal/events"
	"social-service/internal/post"
	"social-service/internal/scheduler"
	"social-service/internal/shared/db"
	"social-service/internal/tag"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, g.AutoMigrate(&tag.Tag{}, &post.Post{}, &scheduler.Job{}))
	return &db.Store{Base: g}
}

func TestTickPublishesDuePost(t *testing.T) {
	store := newStore(t)
	jobs := scheduler.NewStore(store)
	posts := post.NewRepository(store)
	w := scheduler.NewWorker(jobs, posts, events.Nop{}, time.Second)

	fireAt := time.Now().Add(-time.Minute)
	p := &post.Post{UserID: "alice", ProfileID: 1, Title: "later", Content: "x", ScheduledAt: &fireAt}
	require.NoError(t, posts.Create(p))
	_, err := jobs.Schedule(scheduler.KindPublishPost, p.ID, fireAt)
	require.NoError(t, err)

	require.NoError(t, w.Tick(context.Background(), time.Now()))

	got, err := posts.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, got.Visible)

	due, err := jobs.Due(time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestTickLeavesFutureJobs(t *testing.T) {
	store := newStore(t)
	jobs := scheduler.NewStore(store)
	posts := post.NewRepository(store)
	w := scheduler.NewWorker(jobs, posts, events.Nop{}, time.Second)

	fireAt := time.Now().Add(time.Hour)
	p := &post.Post{UserID: "alice", ProfileID: 1, Content: "x", ScheduledAt: &fireAt}
	require.NoError(t, posts.Create(p))
	_, err := jobs.Schedule(scheduler.KindPublishPost, p.ID, fireAt)
	require.NoError(t, err)

	require.NoError(t, w.Tick(context.Background(), time.Now()))

	got, err := posts.GetByID(p.ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)

	due, err := jobs.Due(fireAt.Add(time.Minute), 10)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestTickCompletesJobForDeletedPost(t *testing.T) {
	store := newStore(t)
	jobs := scheduler.NewStore(store)
	posts := post.NewRepository(store)
	w := scheduler.NewWorker(jobs, posts, events.Nop{}, time.Second)

	_, err := jobs.Schedule(scheduler.KindPublishPost, 999, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	require.NoError(t, w.Tick(context.Background(), time.Now()))

	due, err := jobs.Due(time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}
