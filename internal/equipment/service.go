package equipment

import (
	"context"
	"errors"

	"campusmind/internal/sports"

	"github.com/google/uuid"
)

var ErrMissingParameter = errors.New("required parameter is missing")

type Service interface {
	ListBySport(ctx context.Context, sportName string) ([]EquipmentResponse, error)
	Checkout(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error)
	Return(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error)
}

type service struct {
	repo         Repository
	sportService sports.Service
}

func NewService(repo Repository, sportService sports.Service) Service {
	return &service{repo: repo, sportService: sportService}
}

func (s *service) ListBySport(ctx context.Context, sportName string) ([]EquipmentResponse, error) {
	if sportName == "" {
		return nil, ErrMissingParameter
	}

	sport, err := s.sportService.GetSportByName(ctx, sportName)
	if err != nil {
		return nil, err
	}

	equipment, err := s.repo.GetBySportID(ctx, sport.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]EquipmentResponse, 0, len(equipment))
	for i := range equipment {
		responses = append(responses, equipment[i].ToResponse())
	}
	return responses, nil
}

func (s *service) Checkout(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error) {
	if err := s.repo.Checkout(ctx, id); err != nil {
		return nil, err
	}
	return s.current(ctx, id)
}

func (s *service) Return(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error) {
	if err := s.repo.Return(ctx, id); err != nil {
		return nil, err
	}
	return s.current(ctx, id)
}

func (s *service) current(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := equipment.ToResponse()
	return &resp, nil
}
