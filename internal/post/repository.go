package post

import (
	"gorm.io/gorm"

	"social-service/internal/comment"
	"social-service/internal/like"
	"social-service/internal/scheduler"
	"social-service/internal/shared/apperr"
	"social-service/internal/shared/db"
	"social-service/internal/tag"
)

type Repository interface {
	Create(p *Post) error
	GetByID(id uint64) (*Post, error)
	Exists(id uint64) (bool, error)
	IDsByProfile(profileID uint64) ([]uint64, error)
	Update(p *Post, tags []tag.Tag) error
	SetImageKey(id uint64, key string) error
	Delete(id uint64) error
	MarkVisible(id uint64) (bool, error)
	List(f Filter, limit, offset int) ([]ListRow, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

// Create writes the post and, for a scheduled post, its publish job in the
// same transaction: either both rows land or neither does.
func (r *repo) Create(p *Post) error {
	err := r.store.Base.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.ScheduledAt == nil {
			return nil
		}
		job := &scheduler.Job{Kind: scheduler.KindPublishPost, PostID: p.ID, FireAt: *p.ScheduledAt}
		return tx.Create(job).Error
	})
	return apperr.FromDB(err, "post")
}

func (r *repo) GetByID(id uint64) (*Post, error) {
	var p Post
	if err := r.store.Base.Preload("Tags").First(&p, id).Error; err != nil {
		return nil, apperr.FromDB(err, "post")
	}
	return &p, nil
}

func (r *repo) Exists(id uint64) (bool, error) {
	var n int64
	err := r.store.Base.Model(&Post{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repo) IDsByProfile(profileID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.store.Base.Model(&Post{}).
		Where("profile_id = ?", profileID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *repo) Update(p *Post, tags []tag.Tag) error {
	return r.store.Base.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(p).Error; err != nil {
			return err
		}
		return tx.Model(p).Association("Tags").Replace(&tags)
	})
}

func (r *repo) SetImageKey(id uint64, key string) error {
	return r.store.Base.Model(&Post{}).Where("id = ?", id).Update("image_key", key).Error
}

// Delete removes the post and everything hanging off it: likes, comments,
// hashtag links, and any pending publish job.
func (r *repo) Delete(id uint64) error {
	return r.store.Base.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&like.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&scheduler.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, id).Error
	})
}

// MarkVisible flips the publish flag. Returns false when the post no longer
// exists, which the scheduler treats as a completed no-op.
func (r *repo) MarkVisible(id uint64) (bool, error) {
	res := r.store.Base.Model(&Post{}).Where("id = ?", id).Update("visible", true)
	return res.RowsAffected > 0, res.Error
}

// List annotates each row with like/comment counts. Counts use DISTINCT so
// the optional hashtag and liked-by joins cannot multiply them.
func (r *repo) List(f Filter, limit, offset int) ([]ListRow, error) {
	q := r.store.Base.Model(&Post{}).
		Select(`posts.*,
			COUNT(DISTINCT likes.id) AS likes_count,
			COUNT(DISTINCT comments.id) AS comments_count`).
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id")

	if f.Title != "" {
		q = q.Where("posts.title LIKE ?", "%"+f.Title+"%")
	}
	if len(f.TagIDs) > 0 {
		q = q.Joins("JOIN post_tags pt ON pt.post_id = posts.id").
			Where("pt.tag_id IN ?", f.TagIDs)
	}
	if f.ProfileID != 0 {
		q = q.Where("posts.profile_id = ?", f.ProfileID)
	}
	if f.UserID != "" {
		q = q.Where("posts.user_id = ?", f.UserID)
	}
	if f.LikedBy != "" {
		q = q.Joins("JOIN likes ml ON ml.post_id = posts.id AND ml.user_id = ?", f.LikedBy)
	}

	var rows []ListRow
	err := q.Order("posts.id DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, err
}
