package post

import (
	"context"
	"io"
	"time"

	"social-service/internal/authz"
	"social-service/internal/comment"
	"social-service/internal/events"
	"social-service/internal/like"
	"social-service/internal/media"
	"social-service/internal/shared/apperr"
	"social-service/internal/tag"
)

// Profiles resolves the requester's profile; a post always belongs to the
// profile of the actor who creates it.
type Profiles interface {
	IDByUserID(uid string) (uint64, error)
}

type Service interface {
	Create(ctx context.Context, uid string, in CreateReq) (*Post, error)
	GetByID(id uint64) (*DetailResp, error)
	List(f Filter, limit, offset int) ([]ListRow, error)
	LikedBy(uid string, limit, offset int) ([]ListRow, error)
	Update(uid string, id uint64, in UpdateReq) (*Post, error)
	Delete(uid string, id uint64) error
	UploadImage(ctx context.Context, uid string, id uint64, filename, contentType string, data io.Reader, size int64) (*Post, error)
}

type service struct {
	repo     Repository
	tags     tag.Service
	profiles Profiles
	likes    like.Repository
	comments comment.Repository
	storage  media.Storage
	events   events.Writer
}

func NewService(
	repo Repository,
	tags tag.Service,
	profiles Profiles,
	likes like.Repository,
	comments comment.Repository,
	storage media.Storage,
	ev events.Writer,
) Service {
	return &service{
		repo:     repo,
		tags:     tags,
		profiles: profiles,
		likes:    likes,
		comments: comments,
		storage:  storage,
		events:   ev,
	}
}

// Create persists a post owned by the requester. A scheduled post must be
// hidden and scheduled strictly into the future; it is stored invisible with
// a publish job for the scheduled instant, both in one transaction.
func (s *service) Create(ctx context.Context, uid string, in CreateReq) (*Post, error) {
	profileID, err := s.profiles.IDByUserID(uid)
	if err != nil {
		return nil, err
	}

	if in.ScheduledAt != nil {
		if !in.ScheduledAt.After(time.Now()) {
			return nil, apperr.Validation("scheduled time must be in the future")
		}
		if in.Visible {
			return nil, apperr.Validation("a post cannot be both visible and scheduled")
		}
	}

	tags, err := s.tags.Ensure(in.Hashtags)
	if err != nil {
		return nil, err
	}

	p := &Post{
		UserID:      uid,
		ProfileID:   profileID,
		Title:       in.Title,
		Content:     in.Content,
		Visible:     in.Visible,
		ScheduledAt: in.ScheduledAt,
		Tags:        tags,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.PostCreated, p)
	return p, nil
}

func (s *service) GetByID(id uint64) (*DetailResp, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.ListByPost(id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, err
	}
	likerIDs := make([]string, len(likes))
	for i := range likes {
		likerIDs[i] = likes[i].UserID
	}
	names := make([]string, len(p.Tags))
	for i := range p.Tags {
		names[i] = p.Tags[i].Name
	}
	return &DetailResp{Post: *p, Likes: likerIDs, Comments: comments, Hashtags: names}, nil
}

func (s *service) List(f Filter, limit, offset int) ([]ListRow, error) {
	return s.repo.List(f, limit, offset)
}

func (s *service) LikedBy(uid string, limit, offset int) ([]ListRow, error) {
	return s.repo.List(Filter{LikedBy: uid}, limit, offset)
}

// Update mutates content fields only; the publication schedule set at
// creation is not editable, and visibility cannot be forced ahead of it.
func (s *service) Update(uid string, id uint64, in UpdateReq) (*Post, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.Write, uid, p.UserID); err != nil {
		return nil, err
	}
	if in.Visible && p.ScheduledAt != nil && time.Now().Before(*p.ScheduledAt) {
		return nil, apperr.Validation("a scheduled post becomes visible at its scheduled time")
	}
	tags, err := s.tags.Ensure(in.Hashtags)
	if err != nil {
		return nil, err
	}
	p.Title = in.Title
	p.Content = in.Content
	p.Visible = in.Visible
	if err := s.repo.Update(p, tags); err != nil {
		return nil, err
	}
	p.Tags = tags
	return p, nil
}

func (s *service) Delete(uid string, id uint64) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(authz.Write, uid, p.UserID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) UploadImage(ctx context.Context, uid string, id uint64, filename, contentType string, data io.Reader, size int64) (*Post, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.Write, uid, p.UserID); err != nil {
		return nil, err
	}
	name := p.Title
	if name == "" {
		name = p.UserID
	}
	key := media.ObjectKey("posts", name, filename)
	if err := s.storage.Put(ctx, key, contentType, data, size); err != nil {
		return nil, err
	}
	if err := s.repo.SetImageKey(id, key); err != nil {
		return nil, err
	}
	p.ImageKey = key
	return p, nil
}
