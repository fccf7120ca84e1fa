package profile

import (
	"context"
	"io"

	"social-service/internal/authz"
	"social-service/internal/media"
)

// PostIndex is the slice of the post store used to assemble profile details.
type PostIndex interface {
	IDsByProfile(profileID uint64) ([]uint64, error)
}

// Edges lists follow relationships for detail views.
type Edges interface {
	Followers(profileID uint64) ([]uint64, error)
	Following(profileID uint64) ([]uint64, error)
}

type Service interface {
	Create(uid string, in CreateReq) (*Profile, error)
	GetByID(id uint64) (*DetailResp, error)
	List(f Filter, limit, offset int) ([]ListRow, error)
	Update(uid string, id uint64, in UpdateReq) (*Profile, error)
	Delete(uid string, id uint64) error
	UploadImage(ctx context.Context, uid string, id uint64, filename, contentType string, data io.Reader, size int64) (*Profile, error)
}

type service struct {
	repo    Repository
	posts   PostIndex
	edges   Edges
	storage media.Storage
}

func NewService(r Repository, posts PostIndex, edges Edges, storage media.Storage) Service {
	return &service{repo: r, posts: posts, edges: edges, storage: storage}
}

func (s *service) Create(uid string, in CreateReq) (*Profile, error) {
	p := &Profile{UserID: uid, Bio: in.Bio}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(id uint64) (*DetailResp, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	followers, err := s.edges.Followers(id)
	if err != nil {
		return nil, err
	}
	following, err := s.edges.Following(id)
	if err != nil {
		return nil, err
	}
	postIDs, err := s.posts.IDsByProfile(id)
	if err != nil {
		return nil, err
	}
	return &DetailResp{
		Profile:   *p,
		Followers: followers,
		Following: following,
		Posts:     postIDs,
	}, nil
}

func (s *service) List(f Filter, limit, offset int) ([]ListRow, error) {
	return s.repo.List(f, limit, offset)
}

func (s *service) Update(uid string, id uint64, in UpdateReq) (*Profile, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.Write, uid, p.UserID); err != nil {
		return nil, err
	}
	p.Bio = in.Bio
	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
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

func (s *service) UploadImage(ctx context.Context, uid string, id uint64, filename, contentType string, data io.Reader, size int64) (*Profile, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.Write, uid, p.UserID); err != nil {
		return nil, err
	}
	key := media.ObjectKey("userprofiles", p.UserID, filename)
	if err := s.storage.Put(ctx, key, contentType, data, size); err != nil {
		return nil, err
	}
	if err := s.repo.SetImageKey(id, key); err != nil {
		return nil, err
	}
	p.ImageKey = key
	return p, nil
}
