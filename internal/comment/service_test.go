package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"social-service/internal/events"
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
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
	require.NoError(t, g.AutoMigrate(&Comment{}))
	return &db.Store{Base: g}
}

type fakePosts struct{ ids map[uint64]bool }

func (f *fakePosts) Exists(id uint64) (bool, error) { return f.ids[id], nil }

func newSvc(t *testing.T) Service {
	return NewService(NewRepository(newStore(t)), &fakePosts{ids: map[uint64]bool{1: true}}, events.Nop{})
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	svc := newSvc(t)

	_, err := svc.Create(context.Background(), 1, "alice", CreateReq{Content: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateRejectsMissingPost(t *testing.T) {
	svc := newSvc(t)

	_, err := svc.Create(context.Background(), 42, "alice", CreateReq{Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateAndList(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "alice", CreateReq{Content: "first"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	_, err = svc.Create(ctx, 1, "bob", CreateReq{Content: "second"})
	require.NoError(t, err)

	list, err := svc.ListByPost(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "alice", CreateReq{Content: "mine"})
	require.NoError(t, err)

	_, err = svc.Update("bob", c.ID, CreateReq{Content: "hijack"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := svc.Update("alice", c.ID, CreateReq{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "alice", CreateReq{Content: "mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete("", c.ID), apperr.ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete("bob", c.ID), apperr.ErrForbidden)

	require.NoError(t, svc.Delete("alice", c.ID))

	list, err := svc.ListByPost(1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMissingComment(t *testing.T) {
	svc := newSvc(t)

	err := svc.Delete("alice", 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
