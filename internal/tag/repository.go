package tag

import (
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
)

type Repository interface {
	Create(t *Tag) error
	GetByID(id uint64) (*Tag, error)
	List(limit, offset int) ([]Tag, error)
	Update(t *Tag) error
	Delete(id uint64) error
	FirstOrCreateByName(name string) (*Tag, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(t *Tag) error {
	return apperr.FromDB(r.store.Base.Create(t).Error, "hashtag")
}

func (r *repo) GetByID(id uint64) (*Tag, error) {
	var t Tag
	if err := r.store.Base.First(&t, id).Error; err != nil {
		return nil, apperr.FromDB(err, "hashtag")
	}
	return &t, nil
}

func (r *repo) List(limit, offset int) ([]Tag, error) {
	var out []Tag
	err := r.store.Base.Order("name").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *repo) Update(t *Tag) error {
	return apperr.FromDB(r.store.Base.Save(t).Error, "hashtag")
}

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Delete(&Tag{}, id).Error
}

func (r *repo) FirstOrCreateByName(name string) (*Tag, error) {
	t := &Tag{Name: name}
	if err := r.store.Base.FirstOrCreate(t, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return t, nil
}
