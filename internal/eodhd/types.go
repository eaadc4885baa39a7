package eodhd

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// flexFloat64 handles JSON values that may be a number, a numeric string,
// or the "NA" placeholder EODHD uses for missing data.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "NA" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// realTimeResponse represents the /real-time/{symbol} response
type realTimeResponse struct {
	Code          string      `json:"code"`
	Timestamp     int64       `json:"timestamp"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Change        flexFloat64 `json:"change"`
	ChangePercent flexFloat64 `json:"change_p"`
	Volume        flexFloat64 `json:"volume"`
}

// fundamentalsResponse represents the subset of /fundamentals/{symbol}
// this client reads
type fundamentalsResponse struct {
	General struct {
		Code         string `json:"Code"`
		Name         string `json:"Name"`
		Type         string `json:"Type"`
		Exchange     string `json:"Exchange"`
		CurrencyCode string `json:"CurrencyCode"`
		CategoryName string `json:"CategoryName"`
	} `json:"General"`
	Highlights struct {
		PERatio flexFloat64 `json:"PERatio"`
	} `json:"Highlights"`
	Technicals struct {
		High52Week flexFloat64 `json:"52WeekHigh"`
		Low52Week  flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
	ETFData struct {
		NetExpenseRatio flexFloat64 `json:"Net_Expense_Ratio"`
		TotalAssets     flexFloat64 `json:"TotalAssets"`
	} `json:"ETF_Data"`
}

// searchResponse represents one /search/{query} candidate
type searchResponse struct {
	Code          string      `json:"Code"`
	Exchange      string      `json:"Exchange"`
	Name          string      `json:"Name"`
	Type          string      `json:"Type"`
	Country       string      `json:"Country"`
	Currency      string      `json:"Currency"`
	ISIN          string      `json:"ISIN"`
	PreviousClose flexFloat64 `json:"previousClose"`
}
