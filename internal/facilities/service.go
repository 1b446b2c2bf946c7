package facilities

import (
	"context"
	"errors"

	"medq/internal/shared/constants"
	"medq/pkg/cache"

	"github.com/google/uuid"
)

var ErrFacilityExists = errors.New("facility already exists")

type Service interface {
	Create(ctx context.Context, req *CreateFacilityRequest) (*Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetByName(ctx context.Context, name string) (*Facility, error)
	ListActive(ctx context.Context) ([]Facility, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) Create(ctx context.Context, req *CreateFacilityRequest) (*Facility, error) {
	exists, err := s.repo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFacilityExists
	}

	facility := &Facility{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, facility); err != nil {
		return nil, err
	}

	// The catalog changed; drop the cached listing.
	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_FACILITIES)
	}

	return facility, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	if s.cache != nil {
		var facility Facility
		key := constants.BuildFacilityDetailKey(id.String())
		err := s.cache.GetOrSet(ctx, key, constants.TTL_FACILITY_DETAIL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &facility)
		if err == nil {
			return &facility, nil
		}
		if errors.Is(err, ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByName(ctx context.Context, name string) (*Facility, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) ListActive(ctx context.Context) ([]Facility, error) {
	if s.cache != nil {
		var list []Facility
		err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_FACILITIES_ACTIVE, constants.TTL_FACILITIES_LIST, func() (interface{}, error) {
			return s.repo.ListActive(ctx)
		}, &list)
		if err == nil {
			return list, nil
		}
	}
	return s.repo.ListActive(ctx)
}
