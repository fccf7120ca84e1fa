package scheduler

import (
	"time"

	"social-service/internal/shared/db"
)

type Store interface {
	Schedule(kind string, postID uint64, fireAt time.Time) (*Job, error)
	Due(now time.Time, limit int) ([]Job, error)
	MarkDone(id uint64) error
	DeleteByPost(postID uint64) error
}

type store struct{ store *db.Store }

func NewStore(s *db.Store) Store { return &store{store: s} }

func (s *store) Schedule(kind string, postID uint64, fireAt time.Time) (*Job, error) {
	j := &Job{Kind: kind, PostID: postID, FireAt: fireAt}
	if err := s.store.Base.Create(j).Error; err != nil {
		return nil, err
	}
	return j, nil
}

func (s *store) Due(now time.Time, limit int) ([]Job, error) {
	var out []Job
	err := s.store.Base.
		Where("done = ? AND fire_at <= ?", false, now).
		Order("fire_at").Limit(limit).Find(&out).Error
	return out, err
}

func (s *store) MarkDone(id uint64) error {
	return s.store.Base.Model(&Job{}).Where("id = ?", id).Update("done", true).Error
}

func (s *store) DeleteByPost(postID uint64) error {
	return s.store.Base.Delete(&Job{}, "post_id = ?", postID).Error
}
