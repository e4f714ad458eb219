package location

import (
	"context"
)

// Service exposes the location read model consumed by the booking engine.
// Location management (creation, pricing changes) is owned by an external
// admin system and is not part of this backend.
type Service interface {
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)
	SetSpaceStatus(ctx context.Context, locationID, spaceID string, status SpaceStatus) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetSpaceStatus(ctx context.Context, locationID, spaceID string, status SpaceStatus) error {
	loc, err := s.repo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if _, ok := loc.Space(spaceID); !ok {
		return ErrNotFound
	}
	return s.repo.UpdateSpaceStatus(ctx, locationID, spaceID, status)
}
