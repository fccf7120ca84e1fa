package like

import (
	"context"

	"social-service/internal/events"
	"social-service/internal/shared/apperr"
)

type Posts interface {
	Exists(id uint64) (bool, error)
}

type Service interface {
	Like(ctx context.Context, postID uint64, uid string) (*Like, error)
	Unlike(ctx context.Context, postID uint64, uid string) (bool, error)
	ListByPost(postID uint64) ([]Like, error)
}

type service struct {
	repo   Repository
	posts  Posts
	events events.Writer
}

func NewService(r Repository, p Posts, ev events.Writer) Service {
	return &service{repo: r, posts: p, events: ev}
}

// Like records the (post, actor) pair; ownership is taken from the caller,
// never from the payload. A second like on the same post is a conflict.
func (s *service) Like(ctx context.Context, postID uint64, uid string) (*Like, error) {
	ok, err := s.posts.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("post")
	}
	l := &Like{PostID: postID, UserID: uid}
	if err := s.repo.Create(l); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.PostLiked, l)
	return l, nil
}

// Unlike reports false when there was nothing to remove.
func (s *service) Unlike(_ context.Context, postID uint64, uid string) (bool, error) {
	return s.repo.Delete(postID, uid)
}

func (s *service) ListByPost(postID uint64) ([]Like, error) {
	return s.repo.ListByPost(postID)
}
