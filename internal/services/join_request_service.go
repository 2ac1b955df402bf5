package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	dbm "tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/utils"
)

type JoinRequestServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req request_models.CreateJoinRequest) (*resp.JoinRequestResponse, error)
	ListForTrip(ctx context.Context, hostID uuid.UUID, tripID string) ([]resp.JoinRequestResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]resp.JoinRequestResponse, error)
	Respond(ctx context.Context, hostID uuid.UUID, requestID string, req request_models.RespondJoinRequest) (*resp.JoinRequestResponse, error)
	Withdraw(ctx context.Context, userID uuid.UUID, requestID string) error
}

type JoinRequestService struct {
	requests     repositories.JoinRequestRepository
	trips        repositories.GroupTripRepository
	participants repositories.ParticipantRepository
	logger       *zap.Logger
}

func NewJoinRequestService(
	requests repositories.JoinRequestRepository,
	trips repositories.GroupTripRepository,
	participants repositories.ParticipantRepository,
	logger *zap.Logger,
) JoinRequestServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JoinRequestService{
		requests:     requests,
		trips:        trips,
		participants: participants,
		logger:       logger.Named("join_requests"),
	}
}

func (s *JoinRequestService) Create(ctx context.Context, userID uuid.UUID, req request_models.CreateJoinRequest) (*resp.JoinRequestResponse, error) {
	tripID, err := parseGroupTripID(req.TripID)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrGroupTripNotFound
	}
	if trip.Status != dbm.GroupTripActive {
		return nil, utils.ErrGroupTripNotActive
	}
	if trip.HostID == userID {
		return nil, utils.ErrOwnTripRequest
	}

	existing, err := s.requests.FindByTripAndUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrDuplicateJoinRequest
	}

	member, err := s.participants.FindByTripAndUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if member != nil {
		return nil, utils.ErrAlreadyParticipant
	}

	if AvailableSlots(trip) == 0 {
		return nil, utils.ErrTripFull
	}

	jr := &dbm.JoinRequest{
		TripID:  tripID,
		UserID:  userID,
		Message: strings.TrimSpace(req.Message),
		Status:  dbm.JoinRequestPending,
	}
	if err := s.requests.Create(ctx, jr); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("join request created",
		zap.String("request_id", jr.ID.String()),
		zap.String("trip_id", tripID.String()),
		zap.String("user_id", userID.String()))

	jr.Trip = *trip
	out := joinRequestResponse(jr)
	return &out, nil
}

func (s *JoinRequestService) ListForTrip(ctx context.Context, hostID uuid.UUID, tripID string) ([]resp.JoinRequestResponse, error) {
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
	if trip.HostID != hostID {
		return nil, utils.ErrForbidden
	}

	reqs, err := s.requests.ListByTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]resp.JoinRequestResponse, 0, len(reqs))
	for i := range reqs {
		reqs[i].Trip = *trip
		out = append(out, joinRequestResponse(&reqs[i]))
	}
	return out, nil
}

func (s *JoinRequestService) ListMine(ctx context.Context, userID uuid.UUID) ([]resp.JoinRequestResponse, error) {
	reqs, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	out := make([]resp.JoinRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, joinRequestResponse(&reqs[i]))
	}
	return out, nil
}

func (s *JoinRequestService) Respond(ctx context.Context, hostID uuid.UUID, requestID string, req request_models.RespondJoinRequest) (*resp.JoinRequestResponse, error) {
	jr, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if jr.Trip.HostID != hostID {
		return nil, utils.ErrForbidden
	}
	if jr.Status != dbm.JoinRequestPending {
		return nil, utils.ErrJoinRequestNotPending
	}

	switch req.Status {
	case dbm.JoinRequestAccepted:
		if AvailableSlots(&jr.Trip) == 0 {
			return nil, utils.ErrTripFull
		}
		err = s.requests.Accept(ctx, jr)
	case dbm.JoinRequestRejected:
		err = s.requests.Reject(ctx, jr.ID)
	default:
		return nil, utils.NewValidationError("status", "Status must be accepted or rejected")
	}

	switch {
	case errors.Is(err, repositories.ErrNoCapacity):
		return nil, utils.ErrTripFull
	case errors.Is(err, repositories.ErrNotPending):
		return nil, utils.ErrJoinRequestNotPending
	case err != nil:
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	jr.Status = req.Status
	if req.Status == dbm.JoinRequestAccepted {
		jr.Trip.CurrentParticipants++
	}
	s.logger.Info("join request answered",
		zap.String("request_id", jr.ID.String()),
		zap.String("status", req.Status))

	out := joinRequestResponse(jr)
	return &out, nil
}

func (s *JoinRequestService) Withdraw(ctx context.Context, userID uuid.UUID, requestID string) error {
	jr, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if jr.UserID != userID {
		return utils.ErrForbidden
	}
	deleted, err := s.requests.Delete(ctx, jr.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrJoinRequestNotFound
	}
	return nil
}

func (s *JoinRequestService) findRequest(ctx context.Context, requestID string) (*dbm.JoinRequest, error) {
	id, err := uuid.Parse(strings.TrimSpace(requestID))
	if err != nil {
		return nil, utils.ErrJoinRequestNotFound
	}
	jr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if jr == nil {
		return nil, utils.ErrJoinRequestNotFound
	}
	return jr, nil
}

func joinRequestResponse(jr *dbm.JoinRequest) resp.JoinRequestResponse {
	return resp.JoinRequestResponse{
		ID:        jr.ID.String(),
		TripID:    jr.TripID.String(),
		TripTitle: jr.Trip.Title,
		UserID:    jr.UserID.String(),
		UserName:  jr.User.Name,
		Message:   jr.Message,
		Status:    jr.Status,
		CreatedAt: utils.FormatRFC3339(utils.FromUnixSeconds(jr.CreatedAt)),
	}
}
