package models

// Recommendation is one optimization hint from the status endpoint.
// PotentialSavings is display text ("$3.20", "0.45$ per kWh") and is never parsed.
type Recommendation struct {
	Type             string `json:"type,omitempty"` // "alert", "shift"; optional
	Message          string `json:"message"`
	PotentialSavings string `json:"potential_savings"`
}

// StatusSnapshot is the current-usage bundle reported by the endpoint.
type StatusSnapshot struct {
	CurrentUsage    float64          `json:"current_usage"`    // kWh
	ExpectedUsage   float64          `json:"expected_usage"`   // kWh
	EfficiencyScore float64          `json:"efficiency_score"` // 0-100
	Recommendations []Recommendation `json:"recommendations"`
}

// PredictionPoint is one chart sample.
type PredictionPoint struct {
	Time      string  `json:"time"`
	Predicted float64 `json:"predicted"`
	Optimal   float64 `json:"optimal"`
}

// StatusPayload is a validated response body of the status endpoint.
type StatusPayload struct {
	Predictions   []PredictionPoint `json:"predictions"`
	CurrentStatus StatusSnapshot    `json:"current_status"`
}
