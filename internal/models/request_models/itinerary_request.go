package request_models

// GenerateItineraryRequest is the trip a user asks an itinerary for.
type GenerateItineraryRequest struct {
	StartLocation      string   `json:"startLocation" binding:"required"`
	Destination        string   `json:"destination" binding:"required"`
	StartDate          string   `json:"startDate" binding:"required"`
	EndDate            string   `json:"endDate" binding:"required"`
	Travelers          int      `json:"travelers" binding:"required,min=1,max=20"`
	BudgetLevel        string   `json:"budgetLevel" binding:"required,oneof=low medium high"`
	Interests          []string `json:"interests"`
	AdditionalRequests string   `json:"additionalRequests"`
}
