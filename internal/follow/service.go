package follow

import (
	"context"

	"social-service/internal/events"
	"social-service/internal/shared/apperr"
)

// Profiles is the slice of the profile store this package needs; the concrete
// repository is wired in at startup.
type Profiles interface {
	IDByUserID(uid string) (uint64, error)
	Exists(id uint64) (bool, error)
}

type Service interface {
	Follow(ctx context.Context, uid string, targetID uint64) (*Follow, error)
	Unfollow(ctx context.Context, uid string, targetID uint64) (bool, error)
	Followers(profileID uint64) ([]uint64, error)
	Following(profileID uint64) ([]uint64, error)
}

type service struct {
	repo     Repository
	profiles Profiles
	events   events.Writer
}

func NewService(r Repository, p Profiles, ev events.Writer) Service {
	return &service{repo: r, profiles: p, events: ev}
}

func (s *service) Follow(ctx context.Context, uid string, targetID uint64) (*Follow, error) {
	followerID, err := s.profiles.IDByUserID(uid)
	if err != nil {
		return nil, err
	}
	if followerID == targetID {
		return nil, apperr.Validation("cannot follow yourself")
	}
	ok, err := s.profiles.Exists(targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("profile")
	}
	f := &Follow{FollowerID: followerID, FollowingID: targetID}
	if err := s.repo.Create(f); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.ProfileFollowed, f)
	return f, nil
}

// Unfollow reports false when no edge existed; callers treat that as a benign
// "not following" outcome, not a fault.
func (s *service) Unfollow(ctx context.Context, uid string, targetID uint64) (bool, error) {
	followerID, err := s.profiles.IDByUserID(uid)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(followerID, targetID)
}

func (s *service) Followers(profileID uint64) ([]uint64, error) {
	edges, err := s.repo.Followers(profileID)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(edges))
	for i := range edges {
		out[i] = edges[i].FollowerID
	}
	return out, nil
}

func (s *service) Following(profileID uint64) ([]uint64, error) {
	edges, err := s.repo.Following(profileID)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(edges))
	for i := range edges {
		out[i] = edges[i].FollowingID
	}
	return out, nil
}
