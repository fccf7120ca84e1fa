package tag

import "strings"

type Service interface {
	Create(in UpsertReq) (*Tag, error)
	GetByID(id uint64) (*Tag, error)
	List(limit, offset int) ([]Tag, error)
	Update(id uint64, in UpsertReq) (*Tag, error)
	Delete(id uint64) error
	Ensure(names []string) ([]Tag, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Create(in UpsertReq) (*Tag, error) {
	t := &Tag{Name: strings.TrimSpace(in.Name)}
	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(id uint64) (*Tag, error) { return s.repo.GetByID(id) }

func (s *service) List(limit, offset int) ([]Tag, error) { return s.repo.List(limit, offset) }

func (s *service) Update(id uint64, in UpsertReq) (*Tag, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	t.Name = strings.TrimSpace(in.Name)
	if err := s.repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(id uint64) error { return s.repo.Delete(id) }

// Ensure resolves hashtag names to rows, creating missing ones. Duplicate
// and empty names are dropped.
func (s *service) Ensure(names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		t, err := s.repo.FirstOrCreateByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}
