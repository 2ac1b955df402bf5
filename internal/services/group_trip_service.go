package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	dbm "tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/utils"
)

const destinationSearchLimit = 10

type GroupTripServiceInterface interface {
	Create(ctx context.Context, hostID uuid.UUID, req request_models.CreateGroupTripRequest) (*resp.GroupTripResponse, error)
	Feed(ctx context.Context, q request_models.GroupTripFeedQuery) (*resp.GroupTripFeedResponse, error)
	Get(ctx context.Context, tripID string) (*resp.GroupTripResponse, error)
	Mine(ctx context.Context, userID uuid.UUID) ([]resp.GroupTripResponse, error)
	Update(ctx context.Context, userID uuid.UUID, tripID string, req request_models.UpdateGroupTripRequest) (*resp.GroupTripResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, tripID string) error
	SearchDestinations(ctx context.Context, q string) ([]string, error)

	ListParticipants(ctx context.Context, tripID string) ([]resp.ParticipantResponse, error)
	RemoveParticipant(ctx context.Context, actorID uuid.UUID, tripID, participantID string) error
}

type GroupTripService struct {
	trips        repositories.GroupTripRepository
	participants repositories.ParticipantRepository
	logger       *zap.Logger
}

func NewGroupTripService(
	trips repositories.GroupTripRepository,
	participants repositories.ParticipantRepository,
	logger *zap.Logger,
) GroupTripServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupTripService{trips: trips, participants: participants, logger: logger.Named("group_trips")}
}

func (s *GroupTripService) Create(ctx context.Context, hostID uuid.UUID, req request_models.CreateGroupTripRequest) (*resp.GroupTripResponse, error) {
	verr := &utils.ValidationError{}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr.Add("title", "Title is required")
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		verr.Add("destination", "Destination is required")
	}
	start, end := parseGroupDates(req.StartDate, req.EndDate, verr)
	checkSlotsAndBudget(req.OpenSlots, req.BudgetMin, req.BudgetMax, verr)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	prefs, err := encodePreferences(req.Preferences)
	if err != nil {
		return nil, err
	}

	trip := &dbm.GroupTrip{
		HostID:      hostID,
		Title:       title,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(req.Description),
		OpenSlots:   req.OpenSlots,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Preferences: prefs,
		Status:      dbm.GroupTripActive,
	}
	if err := s.trips.CreateWithHost(ctx, trip); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("group trip created", zap.String("trip_id", trip.ID.String()), zap.String("host_id", hostID.String()))
	out := groupTripResponse(trip)
	return &out, nil
}

func (s *GroupTripService) Feed(ctx context.Context, q request_models.GroupTripFeedQuery) (*resp.GroupTripFeedResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 50 {
		q.PerPage = 10
	}

	verr := &utils.ValidationError{}
	filter := repositories.GroupTripFilter{
		Destination:        strings.TrimSpace(q.Destination),
		BudgetMin:          q.BudgetMin,
		BudgetMax:          q.BudgetMax,
		AvailableSlotsOnly: q.AvailableSlotsOnly,
		Offset:             (q.Page - 1) * q.PerPage,
		Limit:              q.PerPage,
	}
	filter.StartDateFrom = optionalDate("start_date_from", q.StartDateFrom, verr)
	filter.StartDateTo = optionalDate("start_date_to", q.StartDateTo, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	trips, total, err := s.trips.Feed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := &resp.GroupTripFeedResponse{
		Trips:   make([]resp.GroupTripResponse, 0, len(trips)),
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	for i := range trips {
		out.Trips = append(out.Trips, groupTripResponse(&trips[i]))
	}
	return out, nil
}

func (s *GroupTripService) Get(ctx context.Context, tripID string) (*resp.GroupTripResponse, error) {
	id, err := parseGroupTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.FindDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrGroupTripNotFound
	}
	out := groupTripResponse(trip)
	out.Participants = participantResponses(trip.Participants)
	return &out, nil
}

func (s *GroupTripService) Mine(ctx context.Context, userID uuid.UUID) ([]resp.GroupTripResponse, error) {
	trips, err := s.trips.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]resp.GroupTripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, groupTripResponse(&trips[i]))
	}
	return out, nil
}

func (s *GroupTripService) Update(ctx context.Context, userID uuid.UUID, tripID string, req request_models.UpdateGroupTripRequest) (*resp.GroupTripResponse, error) {
	trip, err := s.hostedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	fields, err := groupTripUpdateFields(req, trip)
	if err != nil {
		return nil, err
	}

	updated, err := s.trips.Update(ctx, trip.ID, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if updated == nil {
		return nil, utils.ErrGroupTripNotFound
	}
	out := groupTripResponse(updated)
	return &out, nil
}

func (s *GroupTripService) Cancel(ctx context.Context, userID uuid.UUID, tripID string) error {
	trip, err := s.hostedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if _, err := s.trips.Update(ctx, trip.ID, map[string]any{"status": dbm.GroupTripCancelled}); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.logger.Info("group trip cancelled", zap.String("trip_id", trip.ID.String()))
	return nil
}

func (s *GroupTripService) SearchDestinations(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return nil, utils.NewValidationError("q", "Search query must be at least 2 characters")
	}
	out, err := s.trips.SearchDestinations(ctx, q, destinationSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (s *GroupTripService) ListParticipants(ctx context.Context, tripID string) ([]resp.ParticipantResponse, error) {
	id, err := parseGroupTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrGroupTripNotFound
	}
	ps, err := s.participants.ListByTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return participantResponses(ps), nil
}

// RemoveParticipant is allowed to the host and to the participant themselves.
// The host row is never removed.
func (s *GroupTripService) RemoveParticipant(ctx context.Context, actorID uuid.UUID, tripID, participantID string) error {
	id, err := parseGroupTripID(tripID)
	if err != nil {
		return err
	}
	pid, err := uuid.Parse(strings.TrimSpace(participantID))
	if err != nil {
		return utils.ErrParticipantNotFound
	}

	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return utils.ErrGroupTripNotFound
	}

	p, err := s.participants.FindByID(ctx, pid)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if p == nil || p.TripID != trip.ID {
		return utils.ErrParticipantNotFound
	}
	if p.Role == dbm.ParticipantHost || p.UserID == trip.HostID {
		return utils.ErrCannotRemoveHost
	}
	if actorID != trip.HostID && actorID != p.UserID {
		return utils.ErrForbidden
	}

	if err := s.participants.Remove(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.logger.Info("participant removed",
		zap.String("trip_id", trip.ID.String()),
		zap.String("user_id", p.UserID.String()),
		zap.String("by", actorID.String()))
	return nil
}

func (s *GroupTripService) hostedTrip(ctx context.Context, userID uuid.UUID, tripID string) (*dbm.GroupTrip, error) {
	id, err := parseGroupTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrGroupTripNotFound
	}
	if trip.HostID != userID {
		return nil, utils.ErrForbidden
	}
	return trip, nil
}

func parseGroupTripID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, utils.ErrGroupTripNotFound
	}
	return id, nil
}

func parseGroupDates(startDate, endDate string, verr *utils.ValidationError) (time.Time, time.Time) {
	start, err := utils.ParseTripDate(startDate)
	if err != nil {
		verr.Add("start_date", "Valid start date is required")
	}
	end, err2 := utils.ParseTripDate(endDate)
	if err2 != nil {
		verr.Add("end_date", "Valid end date is required")
	}
	if err == nil && err2 == nil && end.Before(start) {
		verr.Add("end_date", "End date must be after start date")
	}
	return start, end
}

func checkSlotsAndBudget(openSlots int, budgetMin, budgetMax float64, verr *utils.ValidationError) {
	if openSlots < 1 {
		verr.Add("open_slots", "Open slots must be at least 1")
	}
	if budgetMin < 0 {
		verr.Add("budget_min", "Budget cannot be negative")
	}
	if budgetMax < 0 {
		verr.Add("budget_max", "Budget cannot be negative")
	}
	if budgetMax < budgetMin {
		verr.Add("budget_max", "Maximum budget must be greater than or equal to minimum budget")
	}
}

func optionalDate(field, s string, verr *utils.ValidationError) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := utils.ParseTripDate(s)
	if err != nil {
		verr.Add(field, "Invalid date")
		return nil
	}
	return &t
}

func groupTripUpdateFields(req request_models.UpdateGroupTripRequest, trip *dbm.GroupTrip) (map[string]any, error) {
	fields := map[string]any{}
	verr := &utils.ValidationError{}

	if req.Title != nil {
		if t := strings.TrimSpace(*req.Title); t != "" {
			fields["title"] = t
		} else {
			verr.Add("title", "Title cannot be empty")
		}
	}
	if req.Destination != nil {
		if d := strings.TrimSpace(*req.Destination); d != "" {
			fields["destination"] = d
		} else {
			verr.Add("destination", "Destination cannot be empty")
		}
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}

	startStr, endStr := utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate)
	if req.StartDate != nil {
		startStr = *req.StartDate
	}
	if req.EndDate != nil {
		endStr = *req.EndDate
	}
	if req.StartDate != nil || req.EndDate != nil {
		start, end := parseGroupDates(startStr, endStr, verr)
		if req.StartDate != nil {
			fields["start_date"] = start
		}
		if req.EndDate != nil {
			fields["end_date"] = end
		}
	}

	openSlots, budgetMin, budgetMax := trip.OpenSlots, trip.BudgetMin, trip.BudgetMax
	if req.OpenSlots != nil {
		openSlots = *req.OpenSlots
		fields["open_slots"] = openSlots
	}
	if req.BudgetMin != nil {
		budgetMin = *req.BudgetMin
		fields["budget_min"] = budgetMin
	}
	if req.BudgetMax != nil {
		budgetMax = *req.BudgetMax
		fields["budget_max"] = budgetMax
	}
	if req.OpenSlots != nil || req.BudgetMin != nil || req.BudgetMax != nil {
		checkSlotsAndBudget(openSlots, budgetMin, budgetMax, verr)
	}
	if req.OpenSlots != nil && openSlots+1 < trip.CurrentParticipants {
		verr.Add("open_slots", "Open slots cannot be fewer than current members")
	}

	if req.Preferences != nil {
		prefs, err := encodePreferences(req.Preferences)
		if err != nil {
			return nil, err
		}
		fields["preferences"] = prefs
	}
	if req.Status != nil {
		switch st := strings.ToLower(strings.TrimSpace(*req.Status)); st {
		case dbm.GroupTripActive, dbm.GroupTripCompleted, dbm.GroupTripCancelled:
			fields["status"] = st
		default:
			verr.Add("status", "Status must be active, completed, or cancelled")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, utils.ErrNoFieldsToUpdate
	}
	return fields, nil
}

func encodePreferences(p map[string]any) (datatypes.JSON, error) {
	if len(p) == 0 {
		return datatypes.JSON("{}"), nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, utils.NewValidationError("preferences", "Preferences must be a JSON object")
	}
	return datatypes.JSON(b), nil
}

// AvailableSlots counts the open seats left; the host does not use one.
func AvailableSlots(t *dbm.GroupTrip) int {
	n := t.OpenSlots + 1 - t.CurrentParticipants
	if n < 0 {
		return 0
	}
	return n
}

func groupTripResponse(t *dbm.GroupTrip) resp.GroupTripResponse {
	out := resp.GroupTripResponse{
		ID:                  t.ID.String(),
		HostID:              t.HostID.String(),
		HostName:            t.Host.Name,
		Title:               t.Title,
		Destination:         t.Destination,
		StartDate:           utils.FormatDate(t.StartDate),
		EndDate:             utils.FormatDate(t.EndDate),
		Description:         t.Description,
		OpenSlots:           t.OpenSlots,
		CurrentParticipants: t.CurrentParticipants,
		AvailableSlots:      AvailableSlots(t),
		BudgetMin:           t.BudgetMin,
		BudgetMax:           t.BudgetMax,
		Status:              t.Status,
		CreatedAt:           utils.FormatRFC3339(utils.FromUnixSeconds(t.CreatedAt)),
	}
	if len(t.Preferences) > 0 {
		var prefs map[string]any
		if err := json.Unmarshal(t.Preferences, &prefs); err == nil && len(prefs) > 0 {
			out.Preferences = prefs
		}
	}
	return out
}

func participantResponses(ps []dbm.Participant) []resp.ParticipantResponse {
	out := make([]resp.ParticipantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, resp.ParticipantResponse{
			ID:       p.ID.String(),
			UserID:   p.UserID.String(),
			UserName: p.User.Name,
			Role:     p.Role,
			JoinedAt: utils.FormatRFC3339(p.JoinedAt),
		})
	}
	return out
}
