package handlers

import (
	"strings"
	"testing"
)

func TestParseHoldingsCSV_HappyPath(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount,ticker\n" +
		"World ETF,IE00B4L5Y983,12.5,5000,IWDA.XETRA\n" +
		"EM ETF,IE00BKM4GZ66,3,2500,\n"
	holdings, csvErrors, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(csvErrors) != 0 {
		t.Fatalf("unexpected csv errors: %v", csvErrors)
	}
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}
	h := holdings[0]
	if h.Name != "World ETF" || h.ISIN != "IE00B4L5Y983" || h.Quantity != 12.5 || h.TargetBuyAmount != 5000 {
		t.Errorf("unexpected first holding: %+v", h)
	}
	if h.ID != h.ISIN {
		t.Errorf("id should default to the ISIN, got %q", h.ID)
	}
	if h.Ticker != "IWDA.XETRA" {
		t.Errorf("expected ticker, got %q", h.Ticker)
	}
}

func TestParseHoldingsCSV_MissingColumn(t *testing.T) {
	csv := "name,isin,quantity\nWorld ETF,IE00B4L5Y983,12.5\n"
	_, _, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "target_buy_amount") {
		t.Errorf("expected error to mention missing column, got: %s", err.Error())
	}
}

func TestParseHoldingsCSV_ShortRowSkipped(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount\n" +
		"Broken Row,IE00B4L5Y983\n" +
		"Good Row,IE00BKM4GZ66,3,2500\n"
	holdings, csvErrors, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Name != "Good Row" {
		t.Fatalf("expected only the good row, got %+v", holdings)
	}
	if len(csvErrors) != 1 || !strings.Contains(csvErrors[0], "row 2") {
		t.Errorf("expected a row 2 error, got %v", csvErrors)
	}
}

func TestParseHoldingsCSV_BadNumbersSkipped(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount\n" +
		"Bad Qty,IE00B4L5Y983,abc,5000\n" +
		"Bad Target,IE00BKM4GZ66,3,xyz\n" +
		"Negative,IE00B3RBWM25,-1,100\n" +
		"Good,IE00B5BMR087,2,1000\n"
	holdings, csvErrors, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Name != "Good" {
		t.Fatalf("expected only the good row, got %+v", holdings)
	}
	if len(csvErrors) != 3 {
		t.Errorf("expected 3 csv errors, got %v", csvErrors)
	}
}

func TestParseHoldingsCSV_EmptyISINSkipped(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount\nNo ISIN,,1,100\n"
	holdings, csvErrors, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 0 {
		t.Fatalf("expected no holdings, got %+v", holdings)
	}
	if len(csvErrors) != 1 || !strings.Contains(csvErrors[0], "isin") {
		t.Errorf("expected an isin error, got %v", csvErrors)
	}
}

func TestParseHoldingsCSV_CaseInsensitiveHeaders(t *testing.T) {
	csv := "Name,ISIN,Quantity,Target_Buy_Amount\nWorld ETF,ie00b4l5y983,1,100\n"
	holdings, _, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(holdings))
	}
	if holdings[0].ISIN != "IE00B4L5Y983" {
		t.Errorf("expected uppercased ISIN, got %q", holdings[0].ISIN)
	}
}

func TestParseHoldingsCSV_OptionalColumns(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount,objective,type,potential_income,distributes\n" +
		"World ETF,IE00B4L5Y983,1,100,Growth,ETF,~2%,quarterly\n"
	holdings, _, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := holdings[0]
	if h.Objective != "Growth" || h.Type != "ETF" || h.PotentialIncome != "~2%" || h.Distributes != "quarterly" {
		t.Errorf("optional columns not parsed: %+v", h)
	}
}

func TestParseHoldingsCSV_HeaderOnly(t *testing.T) {
	csv := "name,isin,quantity,target_buy_amount\n"
	holdings, csvErrors, err := ParseHoldingsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 0 || len(csvErrors) != 0 {
		t.Errorf("expected empty result, got %d holdings, %v errors", len(holdings), csvErrors)
	}
}
