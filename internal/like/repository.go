package like

import (
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
)

type Repository interface {
	Create(l *Like) error
	Delete(postID uint64, uid string) (bool, error)
	ListByPost(postID uint64) ([]Like, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(l *Like) error {
	return apperr.FromDB(r.store.Base.Create(l).Error, "like")
}

func (r *repo) Delete(postID uint64, uid string) (bool, error) {
	res := r.store.Base.Delete(&Like{}, "post_id = ? AND user_id = ?", postID, uid)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) ListByPost(postID uint64) ([]Like, error) {
	var out []Like
	err := r.store.Base.Where("post_id = ?", postID).Find(&out).Error
	return out, err
}
