package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	dbm "tripnect/internal/models/db_models"
	"tripnect/internal/repositories"
	"tripnect/pkg/llm"
)

type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) InsertTx(ctx context.Context, a *dbm.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAccountRepo) FindById(ctx context.Context, id uuid.UUID) (*dbm.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*dbm.Account)
	return a, args.Error(1)
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*dbm.Account, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*dbm.Account)
	return a, args.Error(1)
}

type mockGroupTripRepo struct{ mock.Mock }

func (m *mockGroupTripRepo) CreateWithHost(ctx context.Context, t *dbm.GroupTrip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockGroupTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*dbm.GroupTrip)
	return t, args.Error(1)
}

func (m *mockGroupTripRepo) FindDetail(ctx context.Context, id uuid.UUID) (*dbm.GroupTrip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*dbm.GroupTrip)
	return t, args.Error(1)
}

func (m *mockGroupTripRepo) Feed(ctx context.Context, f repositories.GroupTripFilter) ([]dbm.GroupTrip, int64, error) {
	args := m.Called(ctx, f)
	ts, _ := args.Get(0).([]dbm.GroupTrip)
	return ts, args.Get(1).(int64), args.Error(2)
}

func (m *mockGroupTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]dbm.GroupTrip, error) {
	args := m.Called(ctx, userID)
	ts, _ := args.Get(0).([]dbm.GroupTrip)
	return ts, args.Error(1)
}

func (m *mockGroupTripRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*dbm.GroupTrip, error) {
	args := m.Called(ctx, id, fields)
	t, _ := args.Get(0).(*dbm.GroupTrip)
	return t, args.Error(1)
}

func (m *mockGroupTripRepo) SearchDestinations(ctx context.Context, q string, limit int) ([]string, error) {
	args := m.Called(ctx, q, limit)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

type mockJoinRequestRepo struct{ mock.Mock }

func (m *mockJoinRequestRepo) Create(ctx context.Context, jr *dbm.JoinRequest) error {
	return m.Called(ctx, jr).Error(0)
}

func (m *mockJoinRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.JoinRequest, error) {
	args := m.Called(ctx, id)
	jr, _ := args.Get(0).(*dbm.JoinRequest)
	return jr, args.Error(1)
}

func (m *mockJoinRequestRepo) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.JoinRequest, error) {
	args := m.Called(ctx, tripID, userID)
	jr, _ := args.Get(0).(*dbm.JoinRequest)
	return jr, args.Error(1)
}

func (m *mockJoinRequestRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.JoinRequest, error) {
	args := m.Called(ctx, tripID)
	out, _ := args.Get(0).([]dbm.JoinRequest)
	return out, args.Error(1)
}

func (m *mockJoinRequestRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]dbm.JoinRequest, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]dbm.JoinRequest)
	return out, args.Error(1)
}

func (m *mockJoinRequestRepo) Accept(ctx context.Context, jr *dbm.JoinRequest) error {
	return m.Called(ctx, jr).Error(0)
}

func (m *mockJoinRequestRepo) Reject(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJoinRequestRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockParticipantRepo struct{ mock.Mock }

func (m *mockParticipantRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.Participant, error) {
	args := m.Called(ctx, tripID)
	out, _ := args.Get(0).([]dbm.Participant)
	return out, args.Error(1)
}

func (m *mockParticipantRepo) FindByTripAndUser(ctx context.Context, tripID, userID uuid.UUID) (*dbm.Participant, error) {
	args := m.Called(ctx, tripID, userID)
	p, _ := args.Get(0).(*dbm.Participant)
	return p, args.Error(1)
}

func (m *mockParticipantRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Participant, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*dbm.Participant)
	return p, args.Error(1)
}

func (m *mockParticipantRepo) Remove(ctx context.Context, p *dbm.Participant) error {
	return m.Called(ctx, p).Error(0)
}

type mockTripRepo struct{ mock.Mock }

func (m *mockTripRepo) Create(ctx context.Context, t *dbm.Trip) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dbm.Trip, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).([]dbm.Trip)
	return out, args.Error(1)
}

func (m *mockTripRepo) FindByOwner(ctx context.Context, ownerID, tripID uuid.UUID) (*dbm.Trip, error) {
	args := m.Called(ctx, ownerID, tripID)
	t, _ := args.Get(0).(*dbm.Trip)
	return t, args.Error(1)
}

func (m *mockTripRepo) Update(ctx context.Context, ownerID, tripID uuid.UUID, fields map[string]any) (*dbm.Trip, error) {
	args := m.Called(ctx, ownerID, tripID, fields)
	t, _ := args.Get(0).(*dbm.Trip)
	return t, args.Error(1)
}

func (m *mockTripRepo) Delete(ctx context.Context, ownerID, tripID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, tripID)
	return args.Bool(0), args.Error(1)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockGenerator) Name() string { return "mock" }
