package follow

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
	require.NoError(t, g.AutoMigrate(&Follow{}))
	return &db.Store{Base: g}
}

// fakeProfiles maps user ids to profile ids.
type fakeProfiles struct{ byUID map[string]uint64 }

func (f *fakeProfiles) IDByUserID(uid string) (uint64, error) {
	id, ok := f.byUID[uid]
	if !ok {
		return 0, apperr.NotFound("profile")
	}
	return id, nil
}

func (f *fakeProfiles) Exists(id uint64) (bool, error) {
	for _, v := range f.byUID {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

func newSvc(t *testing.T) Service {
	profiles := &fakeProfiles{byUID: map[string]uint64{"alice": 1, "bob": 2, "carol": 3}}
	return NewService(NewRepository(newStore(t)), profiles, events.Nop{})
}

func TestFollowSelfIsRejected(t *testing.T) {
	svc := newSvc(t)

	_, err := svc.Follow(context.Background(), "alice", 1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	followers, err := svc.Followers(1)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowTwiceConflicts(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", 2)
	require.NoError(t, err)

	_, err = svc.Follow(ctx, "alice", 2)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	followers, err := svc.Followers(2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, followers)
}

func TestFollowUnknownTarget(t *testing.T) {
	svc := newSvc(t)

	_, err := svc.Follow(context.Background(), "alice", 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUnfollowMissingEdgeIsBenign(t *testing.T) {
	svc := newSvc(t)

	removed, err := svc.Unfollow(context.Background(), "alice", 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUnfollowRemovesEdge(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", 2)
	require.NoError(t, err)

	removed, err := svc.Unfollow(ctx, "alice", 2)
	require.NoError(t, err)
	assert.True(t, removed)

	followers, err := svc.Followers(2)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowingLists(t *testing.T) {
	svc := newSvc(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, "alice", 2)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, "alice", 3)
	require.NoError(t, err)

	following, err := svc.Following(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, following)
}
