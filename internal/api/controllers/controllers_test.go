package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripnect/internal/config"
	"tripnect/internal/models/db_models"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/services"
	"tripnect/pkg/geo"
	"tripnect/pkg/llm"
	"tripnect/pkg/middleware"
	"tripnect/pkg/utils"
)

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]db_models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[uuid.UUID]db_models.Trip{}}
}

func (f *fakeTripRepo) Create(_ context.Context, trip *db_models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trips[trip.ID] = *trip
	return nil
}

func (f *fakeTripRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Trip
	for _, t := range f.trips {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) FindByOwner(_ context.Context, ownerID, tripID uuid.UUID) (*db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[tripID]
	if !ok || t.UserID != ownerID {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTripRepo) Update(ctx context.Context, ownerID, tripID uuid.UUID, fields map[string]any) (*db_models.Trip, error) {
	f.mu.Lock()
	t, ok := f.trips[tripID]
	if ok && t.UserID == ownerID {
		if v, ok := fields["title"].(string); ok {
			t.Title = v
		}
		if v, ok := fields["travelers"].(int); ok {
			t.Travelers = v
		}
		f.trips[tripID] = t
	}
	f.mu.Unlock()
	return f.FindByOwner(ctx, ownerID, tripID)
}

func (f *fakeTripRepo) Delete(_ context.Context, ownerID, tripID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[tripID]
	if !ok || t.UserID != ownerID {
		return false, nil
	}
	delete(f.trips, tripID)
	return true, nil
}

type stubGenerator struct {
	raw    string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	s.prompt = prompt
	return s.raw, s.err
}
func (s *stubGenerator) Ping(context.Context) error { return s.err }
func (s *stubGenerator) Name() string                { return "stub" }

type envelope struct {
	Status  string             `json:"status"`
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

type testServer struct {
	router *gin.Engine
	jwt    *utils.JWTManager
	gen    *stubGenerator
	trips  *fakeTripRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		jwt:   utils.NewJWTManager("test-secret", time.Hour),
		gen:   &stubGenerator{},
		trips: newFakeTripRepo(),
	}

	now := func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	resolver := services.NewCoordinateResolverWith(nil, nil, nil, "India", nil, nil)
	itinerary := services.NewItineraryServiceWithClock(resolver, ts.gen, ts.trips,
		config.GenerationConfig{Timeout: time.Second}, nil, nil, now, geo.NewJitterSource)

	ic := NewItineraryController(itinerary)
	tc := NewTripController(services.NewTripService(ts.trips, nil))

	r := gin.New()
	auth := middleware.JWTAuthMiddleware(ts.jwt)
	r.POST("/itinerary/generate", auth, ic.Generate)
	r.GET("/trips", auth, tc.ListTrips)
	r.GET("/trips/:id", auth, tc.GetTrip)
	r.PUT("/trips/:id", auth, tc.UpdateTrip)
	r.DELETE("/trips/:id", auth, tc.DeleteTrip)
	ts.router = r
	return ts
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := ts.jwt.CreateToken(userID, "traveler@example.com")
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func goaRequest() map[string]any {
	return map[string]any{
		"startLocation": "Mumbai",
		"destination":   "Goa",
		"startDate":     "2026-11-01",
		"endDate":       "2026-11-06",
		"travelers":     2,
		"budgetLevel":   "medium",
		"interests":     []string{"beaches", "seafood"},
	}
}

func TestGenerateItinerary_MumbaiToGoa(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.raw = `{"summary":"Konkan coast drive","total_distance":"590 km","estimated_cost":"₹32,000 per person",
		"days":[{"day":1,"activities":[{"time":"07:00 AM","activity":"Leave Mumbai","location":"Mumbai","description":"Beat the traffic"}]}]}`
	user := uuid.New()

	w, env := ts.do(t, http.MethodPost, "/itinerary/generate", ts.token(t, user), goaRequest())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out resp.GenerateItineraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))

	assert.NotEmpty(t, out.TripID)
	assert.Equal(t, "Konkan coast drive", out.Itinerary.Summary)
	require.Len(t, out.Itinerary.Days, 5)
	assert.Equal(t, "2026-11-05", out.Itinerary.Days[4].Date)
	assert.Equal(t, services.SourceStatic, out.Start.Source)
	assert.Equal(t, services.SourceStatic, out.Destination.Source)
	assert.InDelta(t, 440, out.DistanceKm, 25)

	require.GreaterOrEqual(t, len(out.RouteCoordinates), 2)
	assert.Equal(t, geo.NewPoint(19.076, 72.8777), out.RouteCoordinates[0])
	assert.Equal(t, geo.NewPoint(15.2993, 74.124), out.RouteCoordinates[len(out.RouteCoordinates)-1])

	assert.Contains(t, ts.gen.prompt, "5-day road trip itinerary from Mumbai to Goa")

	stored, err := ts.trips.FindByOwner(context.Background(), user, uuid.MustParse(out.TripID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Mumbai to Goa", stored.Title)
	assert.Equal(t, []string{"beaches", "seafood"}, []string(stored.Interests))
}

// Tomorrow to tomorrow+4 plans four days under the end-start span convention.
// See TestDayCountConvention_KnownAmbiguity for the inclusive count of five.
func TestGenerateItinerary_MalformedResponseStillCreates(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.raw = "Sure! Here's your trip: {summary: 'nice', days:[..."
	body := goaRequest()
	body["startDate"] = "2026-10-16"
	body["endDate"] = "2026-10-20"
	body["interests"] = []string{"Beaches"}

	w, env := ts.do(t, http.MethodPost, "/itinerary/generate", ts.token(t, uuid.New()), body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out resp.GenerateItineraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Itinerary.Days, 4)
	for i, d := range out.Itinerary.Days {
		assert.Equal(t, i+1, d.Day)
		assert.Equal(t, fmt.Sprintf("2026-10-%d", 16+i), d.Date)
		assert.NotEmpty(t, d.Activities)
	}
	assert.Equal(t, "₹25,000-50,000 per person", out.Itinerary.EstimatedCost)
}

func TestGenerateItinerary_ProviderErrors(t *testing.T) {
	cases := []struct {
		kind llm.ErrorKind
		code int
	}{
		{llm.KindRateLimited, http.StatusTooManyRequests},
		{llm.KindQuotaExceeded, http.StatusServiceUnavailable},
		{llm.KindServiceUnavailable, http.StatusServiceUnavailable},
		{llm.KindUnauthorized, http.StatusInternalServerError},
		{llm.KindContentFiltered, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		ts := newTestServer(t)
		ts.gen.err = &llm.ProviderError{Provider: "stub", Kind: tc.kind, Message: "boom"}

		w, _ := ts.do(t, http.MethodPost, "/itinerary/generate", ts.token(t, uuid.New()), goaRequest())

		assert.Equal(t, tc.code, w.Code, tc.kind.String())
		assert.Empty(t, ts.trips.trips)
	}
}

func TestGenerateItinerary_Validation(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, uuid.New())

	body := goaRequest()
	delete(body, "destination")
	w, env := ts.do(t, http.MethodPost, "/itinerary/generate", tok, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Errors)

	body = goaRequest()
	body["startDate"] = "2026-10-01"
	w, _ = ts.do(t, http.MethodPost, "/itinerary/generate", tok, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = goaRequest()
	body["endDate"] = "2026-12-15"
	w, _ = ts.do(t, http.MethodPost, "/itinerary/generate", tok, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = ts.do(t, http.MethodPost, "/itinerary/generate", "", goaRequest())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", env.Message)
}

func TestTrips_OwnershipIsScoped(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.raw = `{"days":[]}`
	owner, other := uuid.New(), uuid.New()
	ownerTok, otherTok := ts.token(t, owner), ts.token(t, other)

	w, env := ts.do(t, http.MethodPost, "/itinerary/generate", ownerTok, goaRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var created resp.GenerateItineraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	path := "/trips/" + created.TripID

	w, env = ts.do(t, http.MethodGet, path, ownerTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail resp.TripDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Mumbai to Goa", detail.Title)
	require.NotNil(t, detail.Itinerary)
	assert.Len(t, detail.Itinerary.Days, 5)

	w, _ = ts.do(t, http.MethodGet, path, otherTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodPut, path, otherTok, map[string]any{"title": "Mine now"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodDelete, path, otherTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = ts.do(t, http.MethodGet, "/trips", otherTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, _ = ts.do(t, http.MethodGet, "/trips/not-a-uuid", ownerTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrips_UpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	ts.gen.raw = `{"days":[]}`
	tok := ts.token(t, uuid.New())

	_, env := ts.do(t, http.MethodPost, "/itinerary/generate", tok, goaRequest())
	var created resp.GenerateItineraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	path := "/trips/" + created.TripID

	w, env := ts.do(t, http.MethodPut, path, tok, map[string]any{"title": "  Monsoon run  ", "travelers": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail resp.TripDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Monsoon run", detail.Title)
	assert.Equal(t, 4, detail.Travelers)

	w, env = ts.do(t, http.MethodPut, path, tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields to update", env.Message)

	w, _ = ts.do(t, http.MethodPut, path, tok, map[string]any{"travelers": 25, "title": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPut, path, tok, map[string]any{"end_date": "2026-10-30"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodDelete, path, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, path, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
