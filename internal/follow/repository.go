package follow

import (
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
)

type Repository interface {
	Create(f *Follow) error
	Delete(followerID, followingID uint64) (bool, error)
	Followers(profileID uint64) ([]Follow, error)
	Following(profileID uint64) ([]Follow, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(f *Follow) error {
	return apperr.FromDB(r.store.Base.Create(f).Error, "follow")
}

func (r *repo) Delete(followerID, followingID uint64) (bool, error) {
	res := r.store.Base.Delete(&Follow{}, "follower_id = ? AND following_id = ?", followerID, followingID)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) Followers(profileID uint64) ([]Follow, error) {
	var out []Follow
	err := r.store.Base.Where("following_id = ?", profileID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repo) Following(profileID uint64) ([]Follow, error) {
	var out []Follow
	err := r.store.Base.Where("follower_id = ?", profileID).Order("created_at DESC").Find(&out).Error
	return out, err
}
