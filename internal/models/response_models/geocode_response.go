package response_models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeocodeResult struct {
	Coordinates      Coordinates    `json:"coordinates"`
	FormattedAddress string         `json:"formatted_address"`
	Components       map[string]any `json:"components,omitempty"`
	Confidence       int            `json:"confidence"`
}

type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	TotalResults int             `json:"total_results"`
	Status       string          `json:"status"`
}

type ReverseGeocodeResponse struct {
	Result GeocodeResult `json:"result"`
	Status string        `json:"status"`
}
