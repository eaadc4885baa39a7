package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ImportResponse represents the result of a CSV import
type ImportResponse struct {
	Holdings  []Holding `json:"holdings"`
	CSVErrors []string  `json:"csv_errors,omitempty"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
}

// HoldingsResponse represents the annotated holdings snapshot
type HoldingsResponse struct {
	Holdings          []Holding      `json:"holdings"`
	TotalCurrentValue float64        `json:"total_current_value"`
	NewInvestment     float64        `json:"new_investment"`
	RoundingPolicy    RoundingPolicy `json:"rounding_policy,omitempty"`
	CSVErrors         []string       `json:"csv_errors,omitempty"`
}

// UpdateQuantityRequest represents a session-only quantity edit
type UpdateQuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

// InvestmentRequest sets the new-investment amount and rounding policy
type InvestmentRequest struct {
	NewInvestment  *float64       `json:"new_investment" binding:"required"`
	RoundingPolicy RoundingPolicy `json:"rounding_policy"`
}

// SuggestionResponse carries free-text rebalancing advice
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}
