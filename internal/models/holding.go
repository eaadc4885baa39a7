package models

// RoundingPolicy controls how a new-investment sub-allocation is converted
// into a unit quantity
type RoundingPolicy string

const (
	RoundingPolicyUp      RoundingPolicy = "up"
	RoundingPolicyDown    RoundingPolicy = "down"
	RoundingPolicyNearest RoundingPolicy = "nearest"
)

// ValidRoundingPolicy reports whether the given policy is a known enum value
func ValidRoundingPolicy(p RoundingPolicy) bool {
	switch p {
	case RoundingPolicyUp, RoundingPolicyDown, RoundingPolicyNearest:
		return true
	}
	return false
}

// Holding represents a single tracked fund/ETF position.
// Derived fields are pointers: nil means "not resolved yet" and forces
// callers to handle unknown explicitly.
type Holding struct {
	ID     string `json:"id"`
	ISIN   string `json:"isin"`
	Ticker string `json:"ticker,omitempty"`

	// Static, CSV-sourced fields
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Objective       string  `json:"objective,omitempty"`
	Type            string  `json:"type,omitempty"`
	PotentialIncome string  `json:"potential_income,omitempty"`
	TargetBuyAmount float64 `json:"target_buy_amount"`
	Distributes     string  `json:"distributes,omitempty"`

	// Derived from the latest quote refresh. CurrentAmount is defined iff
	// CurrentPrice is defined; both are set together.
	CurrentPrice        *float64 `json:"current_price,omitempty"`
	CurrentAmount       *float64 `json:"current_amount,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	PriceSourceSymbol   string   `json:"price_source_symbol,omitempty"`
	PriceSourceExchange string   `json:"price_source_exchange,omitempty"`
	CurrencyMismatch    bool     `json:"currency_mismatch,omitempty"`

	// Allocation metrics
	AllocationPercentage       *float64 `json:"allocation_percentage,omitempty"`
	TargetAllocationPercentage float64  `json:"target_allocation_percentage"`
	NewInvestmentAllocation    *float64 `json:"new_investment_allocation,omitempty"`
	QuantityToBuy              *float64 `json:"quantity_to_buy_from_new_investment,omitempty"`

	// Descriptive market fields, display only
	DayChange        *float64 `json:"day_change,omitempty"`
	DayChangePercent *float64 `json:"day_change_percent,omitempty"`
	Volume           *int64   `json:"volume,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	High52Week       *float64 `json:"high_52_week,omitempty"`
	Low52Week        *float64 `json:"low_52_week,omitempty"`
	ExpenseRatio     *float64 `json:"expense_ratio,omitempty"`
	FundSize         *float64 `json:"fund_size,omitempty"`
	Category         string   `json:"category,omitempty"`
}

// Clone returns a deep copy of the holding. Pointer fields are re-allocated
// so mutating the copy never writes through to the original.
func (h Holding) Clone() Holding {
	c := h
	c.CurrentPrice = clonePtr(h.CurrentPrice)
	c.CurrentAmount = clonePtr(h.CurrentAmount)
	c.AllocationPercentage = clonePtr(h.AllocationPercentage)
	c.NewInvestmentAllocation = clonePtr(h.NewInvestmentAllocation)
	c.QuantityToBuy = clonePtr(h.QuantityToBuy)
	c.DayChange = clonePtr(h.DayChange)
	c.DayChangePercent = clonePtr(h.DayChangePercent)
	c.Volume = clonePtr(h.Volume)
	c.PERatio = clonePtr(h.PERatio)
	c.High52Week = clonePtr(h.High52Week)
	c.Low52Week = clonePtr(h.Low52Week)
	c.ExpenseRatio = clonePtr(h.ExpenseRatio)
	c.FundSize = clonePtr(h.FundSize)
	return c
}

// CloneHoldings deep-copies a holdings slice
func CloneHoldings(holdings []Holding) []Holding {
	out := make([]Holding, len(holdings))
	for i, h := range holdings {
		out[i] = h.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
