package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/geo"
	"tripnect/pkg/utils"
)

type TripServiceInterface interface {
	ListTrips(ctx context.Context, userID uuid.UUID) ([]resp.TripSummary, error)
	GetTrip(ctx context.Context, userID uuid.UUID, tripID string) (*resp.TripDetail, error)
	UpdateTrip(ctx context.Context, userID uuid.UUID, tripID string, req request_models.UpdateTripRequest) (*resp.TripDetail, error)
	DeleteTrip(ctx context.Context, userID uuid.UUID, tripID string) error
}

type TripService struct {
	trips  repositories.TripRepository
	logger *zap.Logger
}

func NewTripService(trips repositories.TripRepository, logger *zap.Logger) TripServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripService{trips: trips, logger: logger.Named("trips")}
}

func (s *TripService) ListTrips(ctx context.Context, userID uuid.UUID) ([]resp.TripSummary, error) {
	trips, err := s.trips.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]resp.TripSummary, 0, len(trips))
	for i := range trips {
		out = append(out, tripSummary(&trips[i]))
	}
	return out, nil
}

func (s *TripService) GetTrip(ctx context.Context, userID uuid.UUID, tripID string) (*resp.TripDetail, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return tripDetail(trip), nil
}

func (s *TripService) UpdateTrip(ctx context.Context, userID uuid.UUID, tripID string, req request_models.UpdateTripRequest) (*resp.TripDetail, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}

	current, err := s.trips.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if current == nil {
		return nil, utils.ErrTripNotFound
	}

	fields, err := tripUpdateFields(req, current)
	if err != nil {
		return nil, err
	}

	updated, err := s.trips.Update(ctx, userID, id, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if updated == nil {
		return nil, utils.ErrTripNotFound
	}

	s.logger.Info("trip updated", zap.String("trip_id", id.String()), zap.Int("fields", len(fields)))
	return tripDetail(updated), nil
}

func (s *TripService) DeleteTrip(ctx context.Context, userID uuid.UUID, tripID string) error {
	id, err := parseTripID(tripID)
	if err != nil {
		return err
	}
	deleted, err := s.trips.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrTripNotFound
	}
	return nil
}

func parseTripID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, utils.ErrInvalidTripID
	}
	return id, nil
}

// tripUpdateFields validates the whitelisted fields against the stored trip
// and returns the column map to write.
func tripUpdateFields(req request_models.UpdateTripRequest, current *db_models.Trip) (map[string]any, error) {
	fields := map[string]any{}
	verr := &utils.ValidationError{}

	text := func(field, column string, v *string) {
		if v == nil {
			return
		}
		if s := strings.TrimSpace(*v); s != "" {
			fields[column] = s
		} else {
			verr.Add(field, field+" cannot be empty")
		}
	}
	text("title", "title", req.Title)
	text("start_location", "start_location", req.StartLocation)
	text("destination", "destination", req.Destination)

	if req.Travelers != nil {
		if *req.Travelers < 1 || *req.Travelers > 20 {
			verr.Add("travelers", "Travelers must be between 1 and 20")
		} else {
			fields["travelers"] = *req.Travelers
		}
	}
	if req.BudgetLevel != nil {
		switch level := strings.ToLower(strings.TrimSpace(*req.BudgetLevel)); level {
		case BudgetLow, BudgetMedium, BudgetHigh:
			fields["budget_level"] = level
		default:
			verr.Add("budget_level", "Budget level must be low, medium, or high")
		}
	}
	if req.Interests != nil {
		fields["interests"] = pq.StringArray(cleanInterests(req.Interests))
	}

	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		t, err := utils.ParseTripDate(*req.StartDate)
		if err != nil {
			verr.Add("start_date", "Valid start date is required")
		} else {
			start = t
			fields["start_date"] = t
		}
	}
	if req.EndDate != nil {
		t, err := utils.ParseTripDate(*req.EndDate)
		if err != nil {
			verr.Add("end_date", "Valid end date is required")
		} else {
			end = t
			fields["end_date"] = t
		}
	}
	if (req.StartDate != nil || req.EndDate != nil) && !start.IsZero() && !end.IsZero() && !end.After(start) {
		verr.Add("end_date", "End date must be after start date")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, utils.ErrNoFieldsToUpdate
	}
	return fields, nil
}

func tripSummary(t *db_models.Trip) resp.TripSummary {
	return resp.TripSummary{
		ID:            t.ID.String(),
		Title:         t.Title,
		StartLocation: t.StartLocation,
		Destination:   t.Destination,
		StartDate:     utils.FormatDate(t.StartDate),
		EndDate:       utils.FormatDate(t.EndDate),
		Travelers:     t.Travelers,
		BudgetLevel:   t.BudgetLevel,
		CreatedAt:     utils.FormatRFC3339(utils.FromUnixSeconds(t.CreatedAt)),
	}
}

func tripDetail(t *db_models.Trip) *resp.TripDetail {
	d := &resp.TripDetail{
		TripSummary:        tripSummary(t),
		Interests:          []string(t.Interests),
		AdditionalRequests: t.AdditionalRequests,
		RouteCoordinates:   []geo.Point{},
		UpdatedAt:          utils.FormatRFC3339(utils.FromUnixSeconds(t.UpdatedAt)),
	}
	if d.Interests == nil {
		d.Interests = []string{}
	}
	if len(t.Itinerary) > 0 {
		var it resp.Itinerary
		if err := json.Unmarshal(t.Itinerary, &it); err == nil {
			d.Itinerary = &it
		}
	}
	if len(t.RouteCoordinates) > 0 {
		_ = json.Unmarshal(t.RouteCoordinates, &d.RouteCoordinates)
	}
	return d
}
