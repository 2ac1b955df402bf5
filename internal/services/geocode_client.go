package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tripnect/internal/config"
	"tripnect/pkg/geo"
	"tripnect/pkg/utils"
)

const (
	openCageBaseURL  = "https://api.opencagedata.com"
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
)

// GeocodeMatch is one candidate returned by a geocoding provider.
type GeocodeMatch struct {
	Point      geo.Point
	Formatted  string
	Components map[string]any
	Confidence int
}

type ForwardGeocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]GeocodeMatch, error)
	Name() string
}

type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) ([]GeocodeMatch, error)
}

// -------------- OpenCage ---------------

type OpenCageClient struct {
	HTTP        *http.Client
	APIKey      string
	BaseURL     string
	CountryCode string
}

func NewOpenCageClient(cfg config.GeocodingConfig) *OpenCageClient {
	return &OpenCageClient{
		HTTP:        &http.Client{Timeout: cfg.Timeout},
		APIKey:      cfg.OpenCageAPIKey,
		BaseURL:     openCageBaseURL,
		CountryCode: cfg.CountryCode,
	}
}

func (c *OpenCageClient) Name() string { return "opencage" }

func (c *OpenCageClient) Configured() bool { return c != nil && c.APIKey != "" }

func (c *OpenCageClient) Geocode(ctx context.Context, query string, limit int) ([]GeocodeMatch, error) {
	q := url.Values{}
	q.Set("q", query)
	if c.CountryCode != "" {
		q.Set("countrycode", c.CountryCode)
	}
	q.Set("limit", strconv.Itoa(limit))
	return c.fetch(ctx, q)
}

func (c *OpenCageClient) Reverse(ctx context.Context, lat, lng float64) ([]GeocodeMatch, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("%f+%f", lat, lng))
	q.Set("limit", "1")
	return c.fetch(ctx, q)
}

func (c *OpenCageClient) fetch(ctx context.Context, q url.Values) ([]GeocodeMatch, error) {
	if !c.Configured() {
		return nil, utils.ErrGeocodingNotConfigured
	}
	q.Set("key", c.APIKey)
	q.Set("no_annotations", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/geocode/v1/json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGeocodingUnavailable, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: opencage http error: %v", utils.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: opencage bad status: %s", utils.ErrGeocodingUnavailable, resp.Status)
	}

	var payload struct {
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
			Formatted  string         `json:"formatted"`
			Components map[string]any `json:"components"`
			Confidence int            `json:"confidence"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: opencage decode: %v", utils.ErrGeocodingUnavailable, err)
	}

	out := make([]GeocodeMatch, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, GeocodeMatch{
			Point:      geo.NewPoint(r.Geometry.Lat, r.Geometry.Lng),
			Formatted:  r.Formatted,
			Components: r.Components,
			Confidence: r.Confidence,
		})
	}
	return out, nil
}

// -------------- Nominatim ---------------

type NominatimClient struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func NewNominatimClient(cfg config.GeocodingConfig) *NominatimClient {
	return &NominatimClient{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   nominatimBaseURL,
		UserAgent: cfg.NominatimUserAgent,
	}
}

func (c *NominatimClient) Name() string { return "nominatim" }

func (c *NominatimClient) Geocode(ctx context.Context, query string, limit int) ([]GeocodeMatch, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrGeocodingUnavailable, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim http error: %v", utils.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: nominatim bad status: %s", utils.ErrGeocodingUnavailable, resp.Status)
	}

	var payload []struct {
		Lat         string         `json:"lat"`
		Lon         string         `json:"lon"`
		DisplayName string         `json:"display_name"`
		Address     map[string]any `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: nominatim decode: %v", utils.ErrGeocodingUnavailable, err)
	}

	out := make([]GeocodeMatch, 0, len(payload))
	for _, r := range payload {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
		if errLat != nil || errLng != nil {
			continue
		}
		out = append(out, GeocodeMatch{
			Point:      geo.NewPoint(lat, lng),
			Formatted:  r.DisplayName,
			Components: r.Address,
		})
	}
	return out, nil
}
