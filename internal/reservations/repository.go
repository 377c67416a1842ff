package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)

	// FindOverlapping returns reservations on date whose half-open range
	// intersects [startTime, endTime) on any of the given courts,
	// optionally excluding one reservation id (the modify-in-place case).
	FindOverlapping(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID, excluding *uuid.UUID) ([]Reservation, error)

	// FindDuplicate looks for a byte-identical booking by the same owner.
	FindDuplicate(ctx context.Context, userID *uuid.UUID, sportID, courtID uuid.UUID, date, startTime, endTime string) (*Reservation, error)

	// DeleteDatedBefore purges reservations whose civil date sorts before
	// cutoffDate; used by the retention sweep.
	DeleteDatedBefore(ctx context.Context, cutoffDate string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Sport").
		Preload("Court").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Reservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Preload("Sport").
		Preload("Court").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) ListAll(ctx context.Context) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Sport").
		Preload("Court").
		Order("date ASC, start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) FindOverlapping(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID, excluding *uuid.UUID) ([]Reservation, error) {
	if len(courtIDs) == 0 {
		return nil, nil
	}

	// Half-open overlap: existing.start < proposed.end AND
	// existing.end > proposed.start. Canonical HH:MM strings compare
	// chronologically, so plain string comparison is correct in SQL too.
	query := r.db.WithContext(ctx).
		Preload("Court").
		Where("date = ?", date).
		Where("court_id IN ?", courtIDs).
		Where("start_time < ? AND end_time > ?", endTime, startTime)

	if excluding != nil {
		query = query.Where("id <> ?", *excluding)
	}

	var reservations []Reservation
	err := query.Find(&reservations).Error
	return reservations, err
}

func (r *repository) FindDuplicate(ctx context.Context, userID *uuid.UUID, sportID, courtID uuid.UUID, date, startTime, endTime string) (*Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("sport_id = ?", sportID).
		Where("court_id = ?", courtID).
		Where("date = ?", date).
		Where("start_time = ? AND end_time = ?", startTime, endTime)

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL")
	}

	var reservation Reservation
	err := query.First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) DeleteDatedBefore(ctx context.Context, cutoffDate string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date < ?", cutoffDate).
		Delete(&Reservation{})
	if result.Error != nil {
		return 0, fmt.Errorf("retention delete failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
