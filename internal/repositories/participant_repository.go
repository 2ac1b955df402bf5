package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripnect/internal/models/db_models"
)

type ParticipantRepository interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.Participant, error)
	FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.Participant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Participant, error)
	Remove(ctx context.Context, p *dbm.Participant) error
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.Participant, error) {
	var out []dbm.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("trip_id = ?", tripID).
		Order("joined_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *participantRepository) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.Participant, error) {
	var p dbm.Participant
	err := r.db.WithContext(ctx).First(&p, "trip_id = ? AND user_id = ?", tripID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Participant, error) {
	var p dbm.Participant
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Remove deletes the participant and releases their seat.
func (r *participantRepository) Remove(ctx context.Context, p *dbm.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&dbm.Participant{}, "id = ?", p.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&dbm.GroupTrip{}).
			Where("id = ? AND current_participants > 1", p.TripID).
			Update("current_participants", gorm.Expr("current_participants - 1")).Error
	})
}
