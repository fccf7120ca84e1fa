package comment

import (
	"context"
	"strings"

	"social-service/internal/authz"
	"social-service/internal/events"
	"social-service/internal/shared/apperr"
)

type Posts interface {
	Exists(id uint64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, postID uint64, uid string, in CreateReq) (*Comment, error)
	Update(uid string, id uint64, in CreateReq) (*Comment, error)
	Delete(uid string, id uint64) error
	ListByPost(postID uint64) ([]Comment, error)
}

type service struct {
	repo   Repository
	posts  Posts
	events events.Writer
}

func NewService(r Repository, p Posts, ev events.Writer) Service {
	return &service{repo: r, posts: p, events: ev}
}

func (s *service) Create(ctx context.Context, postID uint64, uid string, in CreateReq) (*Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	ok, err := s.posts.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("post")
	}
	c := &Comment{PostID: postID, UserID: uid, Content: in.Content}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.PostCommented, c)
	return c, nil
}

func (s *service) Update(uid string, id uint64, in CreateReq) (*Comment, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.Write, uid, c.UserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	c.Content = in.Content
	if err := s.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(uid string, id uint64) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(authz.Write, uid, c.UserID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) ListByPost(postID uint64) ([]Comment, error) {
	return s.repo.ListByPost(postID)
}
