package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	dbm "tripnect/internal/models/db_models"
	"tripnect/internal/models/request_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/utils"
)

type joinFixture struct {
	requests     *mockJoinRequestRepo
	trips        *mockGroupTripRepo
	participants *mockParticipantRepo
	svc          JoinRequestServiceInterface
}

func newJoinFixture() *joinFixture {
	f := &joinFixture{
		requests:     &mockJoinRequestRepo{},
		trips:        &mockGroupTripRepo{},
		participants: &mockParticipantRepo{},
	}
	f.svc = NewJoinRequestService(f.requests, f.trips, f.participants, nil)
	return f
}

func pendingRequest(trip *dbm.GroupTrip, user uuid.UUID) *dbm.JoinRequest {
	jr := &dbm.JoinRequest{TripID: trip.ID, UserID: user, Status: dbm.JoinRequestPending, Trip: *trip}
	jr.ID = uuid.New()
	return jr
}

func TestJoinRequestService_Create(t *testing.T) {
	f := newJoinFixture()
	host, user := uuid.New(), uuid.New()
	trip := activeGroupTrip(host, 2, 1)
	f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
	f.requests.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(nil, nil)
	f.participants.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(nil, nil)
	f.requests.On("Create", mock.Anything, mock.MatchedBy(func(jr *dbm.JoinRequest) bool {
		return jr.Status == dbm.JoinRequestPending && jr.Message == "Count me in"
	})).Return(nil)

	out, err := f.svc.Create(context.Background(), user, request_models.CreateJoinRequest{
		TripID:  trip.ID.String(),
		Message: "  Count me in ",
	})

	require.NoError(t, err)
	assert.Equal(t, dbm.JoinRequestPending, out.Status)
	assert.Equal(t, trip.Title, out.TripTitle)
	f.requests.AssertExpectations(t)
}

func TestJoinRequestService_CreateRules(t *testing.T) {
	host, user := uuid.New(), uuid.New()
	ctx := context.Background()

	t.Run("unknown trip", func(t *testing.T) {
		f := newJoinFixture()
		f.trips.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)
		_, err := f.svc.Create(ctx, user, request_models.CreateJoinRequest{TripID: uuid.NewString()})
		assert.ErrorIs(t, err, utils.ErrGroupTripNotFound)
	})

	t.Run("cancelled trip", func(t *testing.T) {
		f := newJoinFixture()
		trip := activeGroupTrip(host, 2, 1)
		trip.Status = dbm.GroupTripCancelled
		f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		_, err := f.svc.Create(ctx, user, request_models.CreateJoinRequest{TripID: trip.ID.String()})
		assert.ErrorIs(t, err, utils.ErrGroupTripNotActive)
	})

	t.Run("own trip", func(t *testing.T) {
		f := newJoinFixture()
		trip := activeGroupTrip(host, 2, 1)
		f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		_, err := f.svc.Create(ctx, host, request_models.CreateJoinRequest{TripID: trip.ID.String()})
		assert.ErrorIs(t, err, utils.ErrOwnTripRequest)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newJoinFixture()
		trip := activeGroupTrip(host, 2, 1)
		f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		f.requests.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(pendingRequest(trip, user), nil)
		_, err := f.svc.Create(ctx, user, request_models.CreateJoinRequest{TripID: trip.ID.String()})
		assert.ErrorIs(t, err, utils.ErrDuplicateJoinRequest)
	})

	t.Run("already a member", func(t *testing.T) {
		f := newJoinFixture()
		trip := activeGroupTrip(host, 2, 2)
		f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		f.requests.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(nil, nil)
		f.participants.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(&dbm.Participant{}, nil)
		_, err := f.svc.Create(ctx, user, request_models.CreateJoinRequest{TripID: trip.ID.String()})
		assert.ErrorIs(t, err, utils.ErrAlreadyParticipant)
	})

	t.Run("full", func(t *testing.T) {
		f := newJoinFixture()
		trip := activeGroupTrip(host, 2, 3)
		f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
		f.requests.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(nil, nil)
		f.participants.On("FindByTripAndUser", mock.Anything, trip.ID, user).Return(nil, nil)
		_, err := f.svc.Create(ctx, user, request_models.CreateJoinRequest{TripID: trip.ID.String()})
		assert.ErrorIs(t, err, utils.ErrTripFull)
		f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestJoinRequestService_RespondAccept(t *testing.T) {
	f := newJoinFixture()
	host, user := uuid.New(), uuid.New()
	trip := activeGroupTrip(host, 2, 1)
	jr := pendingRequest(trip, user)
	f.requests.On("FindByID", mock.Anything, jr.ID).Return(jr, nil)
	f.requests.On("Accept", mock.Anything, jr).Return(nil)

	_, err := f.svc.Respond(context.Background(), uuid.New(), jr.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestAccepted})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	out, err := f.svc.Respond(context.Background(), host, jr.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestAccepted})
	require.NoError(t, err)
	assert.Equal(t, dbm.JoinRequestAccepted, out.Status)
	f.requests.AssertNumberOfCalls(t, "Accept", 1)
}

func TestJoinRequestService_RespondRejectAndGuards(t *testing.T) {
	host, user := uuid.New(), uuid.New()
	ctx := context.Background()

	f := newJoinFixture()
	trip := activeGroupTrip(host, 2, 1)
	jr := pendingRequest(trip, user)
	f.requests.On("FindByID", mock.Anything, jr.ID).Return(jr, nil)
	f.requests.On("Reject", mock.Anything, jr.ID).Return(nil)
	out, err := f.svc.Respond(ctx, host, jr.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestRejected})
	require.NoError(t, err)
	assert.Equal(t, dbm.JoinRequestRejected, out.Status)

	f = newJoinFixture()
	answered := pendingRequest(trip, user)
	answered.Status = dbm.JoinRequestRejected
	f.requests.On("FindByID", mock.Anything, answered.ID).Return(answered, nil)
	_, err = f.svc.Respond(ctx, host, answered.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestAccepted})
	assert.ErrorIs(t, err, utils.ErrJoinRequestNotPending)

	f = newJoinFixture()
	full := pendingRequest(activeGroupTrip(host, 1, 2), user)
	f.requests.On("FindByID", mock.Anything, full.ID).Return(full, nil)
	_, err = f.svc.Respond(ctx, host, full.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestAccepted})
	assert.ErrorIs(t, err, utils.ErrTripFull)
	f.requests.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)

	f = newJoinFixture()
	raced := pendingRequest(trip, user)
	f.requests.On("FindByID", mock.Anything, raced.ID).Return(raced, nil)
	f.requests.On("Accept", mock.Anything, raced).Return(repositories.ErrNoCapacity)
	_, err = f.svc.Respond(ctx, host, raced.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestAccepted})
	assert.ErrorIs(t, err, utils.ErrTripFull)

	f = newJoinFixture()
	f.requests.On("FindByID", mock.Anything, raced.ID).Return(raced, nil)
	f.requests.On("Reject", mock.Anything, raced.ID).Return(repositories.ErrNotPending)
	_, err = f.svc.Respond(ctx, host, raced.ID.String(), request_models.RespondJoinRequest{Status: dbm.JoinRequestRejected})
	assert.ErrorIs(t, err, utils.ErrJoinRequestNotPending)
}

func TestJoinRequestService_ListForTripIsHostOnly(t *testing.T) {
	f := newJoinFixture()
	host, user := uuid.New(), uuid.New()
	trip := activeGroupTrip(host, 3, 1)
	f.trips.On("FindByID", mock.Anything, trip.ID).Return(trip, nil)
	f.requests.On("ListByTrip", mock.Anything, trip.ID).Return([]dbm.JoinRequest{*pendingRequest(trip, user)}, nil)

	_, err := f.svc.ListForTrip(context.Background(), user, trip.ID.String())
	assert.ErrorIs(t, err, utils.ErrForbidden)

	out, err := f.svc.ListForTrip(context.Background(), host, trip.ID.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, user.String(), out[0].UserID)
}

func TestJoinRequestService_Withdraw(t *testing.T) {
	f := newJoinFixture()
	host, user := uuid.New(), uuid.New()
	jr := pendingRequest(activeGroupTrip(host, 3, 1), user)
	f.requests.On("FindByID", mock.Anything, jr.ID).Return(jr, nil)
	f.requests.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)
	f.requests.On("Delete", mock.Anything, jr.ID).Return(true, nil)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Withdraw(ctx, host, jr.ID.String()), utils.ErrForbidden)
	assert.ErrorIs(t, f.svc.Withdraw(ctx, user, uuid.NewString()), utils.ErrJoinRequestNotFound)
	assert.ErrorIs(t, f.svc.Withdraw(ctx, user, "bogus"), utils.ErrJoinRequestNotFound)
	assert.NoError(t, f.svc.Withdraw(ctx, user, jr.ID.String()))
}
