package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	resp "tripnect/internal/models/response_models"
	"tripnect/pkg/utils"
)

type stubHealth struct{ status string }

func (s stubHealth) Check(context.Context) resp.HealthReport {
	return resp.HealthReport{Status: s.status}
}

type stubGeocode struct {
	lat, lng float64
	err      error
}

func (s *stubGeocode) Search(context.Context, string) (*resp.GeocodeResponse, error) {
	return nil, s.err
}

func (s *stubGeocode) Reverse(_ context.Context, lat, lng float64) (*resp.ReverseGeocodeResponse, error) {
	s.lat, s.lng = lat, lng
	if s.err != nil {
		return nil, s.err
	}
	return &resp.ReverseGeocodeResponse{}, nil
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for status, code := range map[string]int{
		resp.HealthOK:       http.StatusOK,
		resp.HealthDegraded: http.StatusOK,
		resp.HealthError:    http.StatusServiceUnavailable,
	} {
		r := gin.New()
		hc := NewHealthController(stubHealth{status: status})
		r.GET("/health", hc.Health)
		r.GET("/health/live", hc.Live)

		w := serve(r, "/health")
		assert.Equal(t, code, w.Code, status)
		var report resp.HealthReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, status, report.Status)

		assert.Equal(t, http.StatusOK, serve(r, "/health/live").Code)
	}
}

func TestGeocode_Handlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	geo := &stubGeocode{}
	r := gin.New()
	gc := NewGeocodeController(geo)
	r.GET("/geocode", gc.Geocode)
	r.GET("/geocode/reverse", gc.Reverse)

	assert.Equal(t, http.StatusBadRequest, serve(r, "/geocode/reverse?lat=north&lng=73.8").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "/geocode/reverse?lat=15.4").Code)

	w := serve(r, "/geocode/reverse?lat=15.49&lng=73.82")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 15.49, geo.lat, 1e-9)
	assert.InDelta(t, 73.82, geo.lng, 1e-9)

	geo.err = utils.ErrLocationNotFound
	assert.Equal(t, http.StatusNotFound, serve(r, "/geocode?location=Atlantis").Code)
	geo.err = utils.ErrGeocodingNotConfigured
	assert.Equal(t, http.StatusInternalServerError, serve(r, "/geocode?location=Goa").Code)
}
