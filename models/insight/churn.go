package insight

// Churn risk levels.
const (
	ChurnLow    = "low"
	ChurnMedium = "medium"
	ChurnHigh   = "high"
)

// ChurnLevels enumerates every risk level, used to zero-initialize
// grouped output.
var ChurnLevels = []string{ChurnHigh, ChurnMedium, ChurnLow}

// ChurnRiskResult classifies one customer's disengagement risk.
type ChurnRiskResult struct {
	CustomerID string `json:"customer_id"`
	Risk       string `json:"risk"` // low | medium | high
	Reason     string `json:"reason"`
}
