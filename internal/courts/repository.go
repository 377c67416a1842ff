package courts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCourtNotFound = errors.New("court not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Court, error)
	GetBySportID(ctx context.Context, sportID uuid.UUID) ([]Court, error)
	GetByGroupKeys(ctx context.Context, keys []string) ([]Court, error)
	GetByNameAndSport(ctx context.Context, name string, sportID uuid.UUID) (*Court, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Court, error)
	Create(ctx context.Context, court *Court) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Court, error) {
	var courts []Court
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Order("court_name ASC").
		Find(&courts).Error
	return courts, err
}

func (r *repository) GetBySportID(ctx context.Context, sportID uuid.UUID) ([]Court, error) {
	var courts []Court
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("sport_id = ?", sportID).
		Order("court_name ASC").
		Find(&courts).Error
	return courts, err
}

// GetByGroupKeys returns every logical court, across all sports, whose
// physical group key is in keys.
func (r *repository) GetByGroupKeys(ctx context.Context, keys []string) ([]Court, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var courts []Court
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("group_key IN ?", keys).
		Order("court_name ASC").
		Find(&courts).Error
	return courts, err
}

func (r *repository) GetByNameAndSport(ctx context.Context, name string, sportID uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("court_name = ? AND sport_id = ?", name, sportID).
		First(&court).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	var court Court
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("id = ?", id).
		First(&court).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

func (r *repository) Create(ctx context.Context, court *Court) error {
	return r.db.WithContext(ctx).Create(court).Error
}
