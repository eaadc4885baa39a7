package models

// QuoteRequest identifies one holding to resolve, one per refresh cycle
type QuoteRequest struct {
	ID     string `json:"id"`
	ISIN   string `json:"isin"`
	Ticker string `json:"ticker,omitempty"`
}

// QuoteResult is the resolver's answer for one request. CurrentPrice and
// Currency are set only when a quote in the required settlement currency was
// found; the descriptive fields are populated from the best quote seen at any
// fallback step regardless of its currency.
type QuoteResult struct {
	ID   string `json:"id"`
	ISIN string `json:"isin"`

	CurrentPrice *float64 `json:"current_price,omitempty"`
	Currency     string   `json:"currency,omitempty"`

	Symbol   string `json:"symbol,omitempty"`
	Exchange string `json:"exchange,omitempty"`

	// CurrencyMismatch distinguishes "found but wrong currency" from a
	// plain miss for diagnostics
	CurrencyMismatch bool `json:"currency_mismatch,omitempty"`

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

// ProviderQuote is the normalized quote shape returned by the quote provider
// client. Price 0 means the provider had no usable price.
type ProviderQuote struct {
	Symbol   string
	Name     string
	Exchange string
	Currency string
	Price    float64

	DayChange        float64
	DayChangePercent float64
	Volume           int64
	PERatio          float64
	High52Week       float64
	Low52Week        float64
	ExpenseRatio     float64
	FundSize         float64
	Category         string
}

// SearchCandidate is one result from a provider text search
type SearchCandidate struct {
	Symbol        string
	Name          string
	Exchange      string
	Currency      string
	ISIN          string
	Type          string
	PreviousClose float64
}
