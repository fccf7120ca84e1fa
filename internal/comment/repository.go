package comment

import (
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
)

type Repository interface {
	Create(c *Comment) error
	GetByID(id uint64) (*Comment, error)
	ListByPost(postID uint64) ([]Comment, error)
	Update(c *Comment) error
	Delete(id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(c *Comment) error {
	return r.store.Base.Create(c).Error
}

func (r *repo) GetByID(id uint64) (*Comment, error) {
	var c Comment
	if err := r.store.Base.First(&c, id).Error; err != nil {
		return nil, apperr.FromDB(err, "comment")
	}
	return &c, nil
}

func (r *repo) ListByPost(postID uint64) ([]Comment, error) {
	var out []Comment
	err := r.store.Base.Where("post_id = ?", postID).Order("created_at, id").Find(&out).Error
	return out, err
}

func (r *repo) Update(c *Comment) error {
	return r.store.Base.Save(c).Error
}

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Delete(&Comment{}, id).Error
}
