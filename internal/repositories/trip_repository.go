package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripnect/internal/models/db_models"
)

// TripRepository scopes every query to the owning account.
type TripRepository interface {
	Create(ctx context.Context, trip *db_models.Trip) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Trip, error)
	FindByOwner(ctx context.Context, ownerID, tripID uuid.UUID) (*db_models.Trip, error)
	Update(ctx context.Context, ownerID, tripID uuid.UUID, fields map[string]any) (*db_models.Trip, error)
	Delete(ctx context.Context, ownerID, tripID uuid.UUID) (bool, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Omit("itinerary", "route_coordinates").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) FindByOwner(ctx context.Context, ownerID, tripID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, ownerID).
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

// Update returns nil when the trip does not exist for ownerID.
func (r *tripRepository) Update(ctx context.Context, ownerID, tripID uuid.UUID, fields map[string]any) (*db_models.Trip, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("id = ? AND user_id = ?", tripID, ownerID).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByOwner(ctx, ownerID, tripID)
}

func (r *tripRepository) Delete(ctx context.Context, ownerID, tripID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, ownerID).
		Delete(&db_models.Trip{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
