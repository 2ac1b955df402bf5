package response_models

const (
	HealthOK       = "OK"
	HealthDegraded = "DEGRADED"
	HealthError    = "ERROR"
)

type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type HealthReport struct {
	Status    string                     `json:"status"`
	Timestamp string                     `json:"timestamp"`
	Uptime    string                     `json:"uptime"`
	Provider  string                     `json:"provider"`
	Checks    map[string]ComponentHealth `json:"checks"`
	Missing   []string                   `json:"missing_config,omitempty"`
}
