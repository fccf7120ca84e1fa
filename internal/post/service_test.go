package post

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"social-service/internal/comment"
	"social-service/internal/events"
	"social-service/internal/like"
	"social-service/internal/media"
	"social-service/internal/scheduler"
	"social-service/internal/shared/apperr"
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
	require.NoError(t, g.AutoMigrate(
		&tag.Tag{}, &Post{}, &like.Like{}, &comment.Comment{}, &scheduler.Job{},
	))
	return &db.Store{Base: g}
}

type fakeProfiles struct{ byUID map[string]uint64 }

func (f *fakeProfiles) IDByUserID(uid string) (uint64, error) {
	id, ok := f.byUID[uid]
	if !ok {
		return 0, apperr.NotFound("profile")
	}
	return id, nil
}

type fixture struct {
	store    *db.Store
	svc      Service
	repo     Repository
	jobs     scheduler.Store
	likes    like.Repository
	comments comment.Repository
}

func newFixture(t *testing.T) *fixture {
	store := newStore(t)
	repo := NewRepository(store)
	likes := like.NewRepository(store)
	comments := comment.NewRepository(store)
	svc := NewService(
		repo,
		tag.NewService(tag.NewRepository(store)),
		&fakeProfiles{byUID: map[string]uint64{"alice": 1, "bob": 2}},
		likes,
		comments,
		media.Storage(nil),
		events.Nop{},
	)
	return &fixture{
		store:    store,
		svc:      svc,
		repo:     repo,
		jobs:     scheduler.NewStore(store),
		likes:    likes,
		comments: comments,
	}
}

func TestCreateRejectsPastSchedule(t *testing.T) {
	fx := newFixture(t)
	past := time.Now().Add(-time.Hour)

	_, err := fx.svc.Create(context.Background(), "alice", CreateReq{
		Content: "hi", ScheduledAt: &past,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateRejectsVisibleSchedule(t *testing.T) {
	fx := newFixture(t)
	future := time.Now().Add(time.Hour)

	_, err := fx.svc.Create(context.Background(), "alice", CreateReq{
		Content: "hi", Visible: true, ScheduledAt: &future,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateScheduledRegistersJob(t *testing.T) {
	fx := newFixture(t)
	future := time.Now().Add(time.Hour)

	p, err := fx.svc.Create(context.Background(), "alice", CreateReq{
		Title: "later", Content: "hi", ScheduledAt: &future,
	})
	require.NoError(t, err)
	assert.False(t, p.Visible)

	due, err := fx.jobs.Due(future.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, scheduler.KindPublishPost, due[0].Kind)
	assert.Equal(t, p.ID, due[0].PostID)
}

func TestCreateScheduledIsAtomic(t *testing.T) {
	fx := newFixture(t)
	future := time.Now().Add(time.Hour)

	// With the job table gone the job insert fails; the post insert must
	// roll back with it rather than leave a permanently hidden orphan.
	require.NoError(t, fx.store.Base.Migrator().DropTable(&scheduler.Job{}))

	_, err := fx.svc.Create(context.Background(), "alice", CreateReq{
		Content: "hi", ScheduledAt: &future,
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, fx.store.Base.Model(&Post{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateWithoutProfile(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Create(context.Background(), "nobody", CreateReq{Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateEnsuresHashtags(t *testing.T) {
	fx := newFixture(t)

	p, err := fx.svc.Create(context.Background(), "alice", CreateReq{
		Content: "hi", Visible: true, Hashtags: []string{"go", "go", "db"},
	})
	require.NoError(t, err)

	detail, err := fx.svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "db"}, detail.Hashtags)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, "alice", CreateReq{Title: "mine", Content: "hi", Visible: true})
	require.NoError(t, err)

	_, err = fx.svc.Update("bob", p.ID, UpdateReq{Title: "stolen", Content: "hi", Visible: true})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := fx.svc.Update("alice", p.ID, UpdateReq{Title: "edited", Content: "hi", Visible: true, Hashtags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "go", got.Tags[0].Name)
}

func TestUpdateCannotForceVisibilityEarly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	p, err := fx.svc.Create(ctx, "alice", CreateReq{Content: "hi", ScheduledAt: &future})
	require.NoError(t, err)

	_, err = fx.svc.Update("alice", p.ID, UpdateReq{Content: "hi", Visible: true})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// Content edits that keep the post hidden are still allowed.
	got, err := fx.svc.Update("alice", p.ID, UpdateReq{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.False(t, got.Visible)
}

func TestDeleteCascadesAndCancelsJob(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	p, err := fx.svc.Create(ctx, "alice", CreateReq{Content: "hi", ScheduledAt: &future})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete("alice", p.ID))

	_, err = fx.svc.GetByID(p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	due, err := fx.jobs.Due(future.Add(time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestListCountsWithHashtagFilter(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, "alice", CreateReq{
		Content: "hi", Visible: true, Hashtags: []string{"go", "db"},
	})
	require.NoError(t, err)
	_, err = fx.svc.Create(ctx, "bob", CreateReq{Content: "bye", Visible: true})
	require.NoError(t, err)

	// Two likes and one comment on the tagged post. The double join through
	// post_tags must not double them.
	require.NoError(t, fx.likes.Create(&like.Like{PostID: p.ID, UserID: "bob"}))
	require.NoError(t, fx.likes.Create(&like.Like{PostID: p.ID, UserID: "carol"}))
	require.NoError(t, fx.comments.Create(&comment.Comment{PostID: p.ID, UserID: "bob", Content: "nice"}))

	detail, err := fx.svc.GetByID(p.ID)
	require.NoError(t, err)
	tagIDs := make([]uint64, 0, 2)
	for _, tg := range detail.Tags {
		tagIDs = append(tagIDs, tg.ID)
	}

	rows, err := fx.svc.List(Filter{TagIDs: tagIDs}, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].LikesCount)
	assert.Equal(t, int64(1), rows[0].CommentsCount)
}

func TestLikedByListsOnlyLikedPosts(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	liked, err := fx.svc.Create(ctx, "alice", CreateReq{Title: "liked", Content: "hi", Visible: true})
	require.NoError(t, err)
	_, err = fx.svc.Create(ctx, "alice", CreateReq{Title: "ignored", Content: "hi", Visible: true})
	require.NoError(t, err)

	require.NoError(t, fx.likes.Create(&like.Like{PostID: liked.ID, UserID: "bob"}))

	rows, err := fx.svc.LikedBy("bob", 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, liked.ID, rows[0].ID)
}
