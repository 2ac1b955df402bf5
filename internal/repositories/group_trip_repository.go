package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripnect/internal/models/db_models"
)

// GroupTripFilter narrows the public feed. Nil pointers and zero values are
// not applied.
type GroupTripFilter struct {
	Destination        string
	StartDateFrom      *time.Time
	StartDateTo        *time.Time
	BudgetMin          *float64
	BudgetMax          *float64
	AvailableSlotsOnly bool
	Offset             int
	Limit              int
}

type GroupTripRepository interface {
	CreateWithHost(ctx context.Context, trip *dbm.GroupTrip) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error)
	Feed(ctx context.Context, f GroupTripFilter) ([]dbm.GroupTrip, int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]dbm.GroupTrip, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*dbm.GroupTrip, error)
	SearchDestinations(ctx context.Context, q string, limit int) ([]string, error)
}

type groupTripRepository struct {
	db *gorm.DB
}

func NewGroupTripRepository(db *gorm.DB) GroupTripRepository {
	return &groupTripRepository{db: db}
}

// CreateWithHost inserts the trip and its host participant atomically.
func (r *groupTripRepository) CreateWithHost(ctx context.Context, trip *dbm.GroupTrip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trip.CurrentParticipants = 1
		if err := tx.Omit("Host", "Participants").Create(trip).Error; err != nil {
			return err
		}
		host := dbm.Participant{
			TripID:   trip.ID,
			UserID:   trip.HostID,
			Role:     dbm.ParticipantHost,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Omit("User").Create(&host).Error
	})
}

func (r *groupTripRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error) {
	var trip dbm.GroupTrip
	err := r.db.WithContext(ctx).Preload("Host").First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *groupTripRepository) FindDetail(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error) {
	var trip dbm.GroupTrip
	err := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Participants.User").
		First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (r *groupTripRepository) Feed(ctx context.Context, f GroupTripFilter) ([]dbm.GroupTrip, int64, error) {
	q := r.db.WithContext(ctx).Model(&dbm.GroupTrip{}).Where("status = ?", dbm.GroupTripActive)

	if f.Destination != "" {
		q = q.Where("destination ILIKE ?", "%"+f.Destination+"%")
	}
	if f.StartDateFrom != nil {
		q = q.Where("start_date >= ?", *f.StartDateFrom)
	}
	if f.StartDateTo != nil {
		q = q.Where("start_date <= ?", *f.StartDateTo)
	}
	if f.BudgetMin != nil {
		q = q.Where("budget_max >= ?", *f.BudgetMin)
	}
	if f.BudgetMax != nil {
		q = q.Where("budget_min <= ?", *f.BudgetMax)
	}
	if f.AvailableSlotsOnly {
		// The host occupies a seat on top of the open slots.
		q = q.Where("current_participants < open_slots + 1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []dbm.GroupTrip
	err := q.Preload("Host").
		Order("start_date ASC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *groupTripRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]dbm.GroupTrip, error) {
	var trips []dbm.GroupTrip
	member := r.db.Model(&dbm.Participant{}).Select("trip_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("host_id = ? OR id IN (?)", userID, member).
		Order("start_date ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *groupTripRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*dbm.GroupTrip, error) {
	res := r.db.WithContext(ctx).Model(&dbm.GroupTrip{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *groupTripRepository) SearchDestinations(ctx context.Context, q string, limit int) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&dbm.GroupTrip{}).
		Distinct("destination").
		Where("status = ? AND destination ILIKE ?", dbm.GroupTripActive, "%"+q+"%").
		Order("destination ASC").
		Limit(limit).
		Pluck("destination", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
