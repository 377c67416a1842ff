package sports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSportNotFound = errors.New("sport not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Sport, error)
	GetByName(ctx context.Context, name string) (*Sport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Sport, error)
	Create(ctx context.Context, sport *Sport) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Sport, error) {
	var sports []Sport
	err := r.db.WithContext(ctx).Order("sport_name ASC").Find(&sports).Error
	return sports, err
}

func (r *repository) GetByName(ctx context.Context, name string) (*Sport, error) {
	var sport Sport
	err := r.db.WithContext(ctx).Where("sport_name = ?", name).First(&sport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Sport, error) {
	var sport Sport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *repository) Create(ctx context.Context, sport *Sport) error {
	return r.db.WithContext(ctx).Create(sport).Error
}
