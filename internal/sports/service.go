package sports

import (
	"context"

	"campusmind/internal/shared/constants"
	"campusmind/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	ListSports(ctx context.Context) ([]SportResponse, error)
	GetSportByName(ctx context.Context, name string) (*Sport, error)
	GetSportByID(ctx context.Context, id uuid.UUID) (*Sport, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// ListSports returns the seeded sport catalog. The list changes only when an
// administrator reseeds, so it is cached with a long TTL.
func (s *service) ListSports(ctx context.Context) ([]SportResponse, error) {
	if s.cacheService != nil {
		var cached []SportResponse
		if err := s.cacheService.Get(ctx, constants.CacheKeySportsList, &cached); err == nil {
			return cached, nil
		}
	}

	sports, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]SportResponse, 0, len(sports))
	for _, sport := range sports {
		responses = append(responses, sport.ToResponse())
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CacheKeySportsList, responses, constants.TTLCatalog)
	}

	return responses, nil
}

func (s *service) GetSportByName(ctx context.Context, name string) (*Sport, error) {
	if s.cacheService != nil {
		var cached Sport
		if err := s.cacheService.Get(ctx, constants.CacheKeySportByName+name, &cached); err == nil {
			return &cached, nil
		}
	}

	sport, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CacheKeySportByName+name, sport, constants.TTLCatalog)
	}

	return sport, nil
}

func (s *service) GetSportByID(ctx context.Context, id uuid.UUID) (*Sport, error) {
	return s.repo.GetByID(ctx, id)
}
