package response_models

import "tripnect/pkg/geo"

type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type DayPlan struct {
	Day           int        `json:"day"`
	Date          string     `json:"date"`
	StartLocation string     `json:"start_location,omitempty"`
	EndLocation   string     `json:"end_location,omitempty"`
	Distance      string     `json:"distance,omitempty"`
	Activities    []Activity `json:"activities"`
}

// Itinerary is the day-by-day plan returned to clients and stored with a trip.
type Itinerary struct {
	Summary       string    `json:"summary"`
	TotalDistance string    `json:"total_distance"`
	EstimatedCost string    `json:"estimated_cost"`
	Days          []DayPlan `json:"days"`
}

type ResolvedPlace struct {
	Name      string  `json:"name"`
	Formatted string  `json:"formatted"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Source    string  `json:"source"`
	IsDefault bool    `json:"is_default"`
}

type GenerateItineraryResponse struct {
	TripID           string        `json:"tripId"`
	Itinerary        Itinerary     `json:"itinerary"`
	RouteCoordinates []geo.Point   `json:"route_coordinates"`
	Start            ResolvedPlace `json:"start"`
	Destination      ResolvedPlace `json:"destination"`
	DistanceKm       float64       `json:"distance_km"`
	TravelTime       string        `json:"travel_time"`
}
