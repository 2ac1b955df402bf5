package request_models

// UpdateTripRequest holds the editable trip fields. Nil means "leave unchanged".
type UpdateTripRequest struct {
	Title         *string  `json:"title"`
	StartLocation *string  `json:"start_location"`
	Destination   *string  `json:"destination"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	Travelers     *int     `json:"travelers"`
	BudgetLevel   *string  `json:"budget_level"`
	Interests     []string `json:"interests"`
}
