package response_models

type ParticipantResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type GroupTripResponse struct {
	ID                  string         `json:"id"`
	HostID              string         `json:"host_id"`
	HostName            string         `json:"host_name,omitempty"`
	Title               string         `json:"title"`
	Destination         string         `json:"destination"`
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
	Description         string         `json:"description,omitempty"`
	OpenSlots           int            `json:"open_slots"`
	CurrentParticipants int            `json:"current_participants"`
	AvailableSlots      int            `json:"available_slots"`
	BudgetMin           float64        `json:"budget_min"`
	BudgetMax           float64        `json:"budget_max"`
	Preferences         map[string]any `json:"preferences,omitempty"`
	Status              string         `json:"status"`
	CreatedAt           string         `json:"created_at"`

	Participants []ParticipantResponse `json:"participants,omitempty"`
}

type GroupTripFeedResponse struct {
	Trips   []GroupTripResponse `json:"trips"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

type JoinRequestResponse struct {
	ID        string `json:"id"`
	TripID    string `json:"trip_id"`
	TripTitle string `json:"trip_title,omitempty"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
