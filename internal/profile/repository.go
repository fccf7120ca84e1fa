package profile

import (
	"gorm.io/gorm"

	"social-service/internal/comment"
	"social-service/internal/follow"
	"social-service/internal/like"
	"social-service/internal/post"
	"social-service/internal/scheduler"
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
)

type Repository interface {
	Create(p *Profile) error
	GetByID(id uint64) (*Profile, error)
	GetByUserID(uid string) (*Profile, error)
	IDByUserID(uid string) (uint64, error)
	Exists(id uint64) (bool, error)
	Update(p *Profile) error
	SetImageKey(id uint64, key string) error
	Delete(id uint64) error
	List(f Filter, limit, offset int) ([]ListRow, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(p *Profile) error {
	return apperr.FromDB(r.store.Base.Create(p).Error, "profile")
}

func (r *repo) GetByID(id uint64) (*Profile, error) {
	var p Profile
	if err := r.store.Base.First(&p, id).Error; err != nil {
		return nil, apperr.FromDB(err, "profile")
	}
	return &p, nil
}

func (r *repo) GetByUserID(uid string) (*Profile, error) {
	var p Profile
	if err := r.store.Base.First(&p, "user_id = ?", uid).Error; err != nil {
		return nil, apperr.FromDB(err, "profile")
	}
	return &p, nil
}

func (r *repo) IDByUserID(uid string) (uint64, error) {
	p, err := r.GetByUserID(uid)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *repo) Exists(id uint64) (bool, error) {
	var n int64
	err := r.store.Base.Model(&Profile{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repo) Update(p *Profile) error {
	return apperr.FromDB(r.store.Base.Save(p).Error, "profile")
}

func (r *repo) SetImageKey(id uint64, key string) error {
	return r.store.Base.Model(&Profile{}).Where("id = ?", id).Update("image_key", key).Error
}

// Delete cascades to the profile's posts (and their likes, comments, tag
// links, pending publish jobs) and to follow edges in both directions, all
// in one transaction.
func (r *repo) Delete(id uint64) error {
	return r.store.Base.Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&post.Post{}).Select("id").Where("profile_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&like.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&scheduler.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id IN (SELECT id FROM posts WHERE profile_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&post.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&follow.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Profile{}, id).Error
	})
}

// List annotates every row with follower/following/post counts. DISTINCT
// keeps the three LEFT JOINs from inflating each other's counts.
func (r *repo) List(f Filter, limit, offset int) ([]ListRow, error) {
	q := r.store.Base.Model(&Profile{}).
		Select(`profiles.*,
			COUNT(DISTINCT fin.follower_id) AS followers_count,
			COUNT(DISTINCT fout.following_id) AS following_count,
			COUNT(DISTINCT posts.id) AS posts_count`).
		Joins("LEFT JOIN follows fin ON fin.following_id = profiles.id").
		Joins("LEFT JOIN follows fout ON fout.follower_id = profiles.id").
		Joins("LEFT JOIN posts ON posts.profile_id = profiles.id").
		Group("profiles.id")

	if f.UserID != "" {
		q = q.Where("profiles.user_id = ?", f.UserID)
	}
	if f.Bio != "" {
		q = q.Where("profiles.bio LIKE ?", "%"+f.Bio+"%")
	}

	var rows []ListRow
	err := q.Order("profiles.id").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, err
}
