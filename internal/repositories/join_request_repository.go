package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbm "tripnect/internal/models/db_models"
)

var (
	// ErrNoCapacity is returned by Accept when the trip filled up meanwhile.
	ErrNoCapacity = errors.New("trip has no remaining capacity")
	// ErrNotPending is returned when the request was answered concurrently.
	ErrNotPending = errors.New("join request is not pending")
)

type JoinRequestRepository interface {
	Create(ctx context.Context, jr *dbm.JoinRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.JoinRequest, error)
	FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.JoinRequest, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.JoinRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.JoinRequest, error)
	Accept(ctx context.Context, jr *dbm.JoinRequest) error
	Reject(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type joinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) Create(ctx context.Context, jr *dbm.JoinRequest) error {
	return r.db.WithContext(ctx).Omit("Trip", "User").Create(jr).Error
}

func (r *joinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.JoinRequest, error) {
	var jr dbm.JoinRequest
	err := r.db.WithContext(ctx).Preload("Trip").Preload("User").First(&jr, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &jr, nil
}

func (r *joinRequestRepository) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.JoinRequest, error) {
	var jr dbm.JoinRequest
	err := r.db.WithContext(ctx).First(&jr, "trip_id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &jr, nil
}

func (r *joinRequestRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.JoinRequest, error) {
	var out []dbm.JoinRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *joinRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.JoinRequest, error) {
	var out []dbm.JoinRequest
	err := r.db.WithContext(ctx).
		Preload("Trip").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Accept marks the request accepted, adds the member and bumps the trip's
// participant count in one transaction. The trip row is locked so concurrent
// acceptances cannot overfill it.
func (r *joinRequestRepository) Accept(ctx context.Context, jr *dbm.JoinRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip dbm.GroupTrip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&trip, "id = ?", jr.TripID).Error; err != nil {
			return err
		}
		if trip.CurrentParticipants >= trip.OpenSlots+1 {
			return ErrNoCapacity
		}

		res := tx.Model(&dbm.JoinRequest{}).
			Where("id = ? AND status = ?", jr.ID, dbm.JoinRequestPending).
			Update("status", dbm.JoinRequestAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		member := dbm.Participant{
			TripID:   jr.TripID,
			UserID:   jr.UserID,
			Role:     dbm.ParticipantMember,
			JoinedAt: time.Now().UTC(),
		}
		if err := tx.Omit("User").Create(&member).Error; err != nil {
			return err
		}

		return tx.Model(&dbm.GroupTrip{}).
			Where("id = ?", jr.TripID).
			Update("current_participants", gorm.Expr("current_participants + 1")).Error
	})
}

func (r *joinRequestRepository) Reject(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&dbm.JoinRequest{}).
		Where("id = ? AND status = ?", id, dbm.JoinRequestPending).
		Update("status", dbm.JoinRequestRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *joinRequestRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&dbm.JoinRequest{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
