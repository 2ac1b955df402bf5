package response_models

import "tripnect/pkg/geo"

type TripSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	StartLocation string `json:"start_location"`
	Destination   string `json:"destination"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Travelers     int    `json:"travelers"`
	BudgetLevel   string `json:"budget_level"`
	CreatedAt     string `json:"created_at"`
}

type TripDetail struct {
	TripSummary
	Interests          []string    `json:"interests"`
	AdditionalRequests string      `json:"additional_requests,omitempty"`
	Itinerary          *Itinerary  `json:"itinerary"`
	RouteCoordinates   []geo.Point `json:"route_coordinates"`
	UpdatedAt          string      `json:"updated_at"`
}
