package equipment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEquipmentNotFound  = errors.New("sport equipment not found")
	ErrEquipmentExhausted = errors.New("all equipment of this type is checked out")
	ErrNothingCheckedOut  = errors.New("no equipment of this type is checked out")
)

type Repository interface {
	GetBySportID(ctx context.Context, sportID uuid.UUID) ([]SportEquipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SportEquipment, error)
	Create(ctx context.Context, equipment *SportEquipment) error

	// Checkout atomically decrements the shelf count, failing when nothing
	// is left rather than going negative.
	Checkout(ctx context.Context, id uuid.UUID) error

	// Return atomically increments the shelf count, capped at the owned
	// stock.
	Return(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBySportID(ctx context.Context, sportID uuid.UUID) ([]SportEquipment, error) {
	var equipment []SportEquipment
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("sport_id = ?", sportID).
		Order("equipment_name ASC").
		Find(&equipment).Error
	return equipment, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SportEquipment, error) {
	var equipment SportEquipment
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Where("id = ?", id).
		First(&equipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *repository) Create(ctx context.Context, equipment *SportEquipment) error {
	return r.db.WithContext(ctx).Create(equipment).Error
}

func (r *repository) Checkout(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&SportEquipment{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Guarded update rejected: either the row is missing or empty.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrEquipmentExhausted
	}
	return nil
}

func (r *repository) Return(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&SportEquipment{}).
		Where("id = ? AND quantity < total_quantity", id).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNothingCheckedOut
	}
	return nil
}
