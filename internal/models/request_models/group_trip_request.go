package request_models

type CreateGroupTripRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=200"`
	Destination string         `json:"destination" binding:"required,min=1"`
	StartDate   string         `json:"start_date" binding:"required"`
	EndDate     string         `json:"end_date" binding:"required"`
	Description string         `json:"description"`
	OpenSlots   int            `json:"open_slots" binding:"required,min=1"`
	BudgetMin   float64        `json:"budget_min" binding:"min=0"`
	BudgetMax   float64        `json:"budget_max" binding:"min=0"`
	Preferences map[string]any `json:"preferences"`
}

type UpdateGroupTripRequest struct {
	Title       *string        `json:"title"`
	Destination *string        `json:"destination"`
	StartDate   *string        `json:"start_date"`
	EndDate     *string        `json:"end_date"`
	Description *string        `json:"description"`
	OpenSlots   *int           `json:"open_slots"`
	BudgetMin   *float64       `json:"budget_min"`
	BudgetMax   *float64       `json:"budget_max"`
	Preferences map[string]any `json:"preferences"`
	Status      *string        `json:"status"`
}

// GroupTripFeedQuery is bound from the feed query string.
type GroupTripFeedQuery struct {
	Page               int      `form:"page,default=1" binding:"min=1"`
	PerPage            int      `form:"per_page,default=10" binding:"min=1,max=50"`
	Destination        string   `form:"destination"`
	StartDateFrom      string   `form:"start_date_from"`
	StartDateTo        string   `form:"start_date_to"`
	BudgetMin          *float64 `form:"budget_min"`
	BudgetMax          *float64 `form:"budget_max"`
	AvailableSlotsOnly bool     `form:"available_slots_only"`
}

type CreateJoinRequest struct {
	TripID  string `json:"trip_id" binding:"required,uuid"`
	Message string `json:"message" binding:"max=1000"`
}

type RespondJoinRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}
