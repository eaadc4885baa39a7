package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		for prefix, body := range routes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestGetQuote_MergesRealTimeAndFundamentals(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/real-time/": `{"code":"IWDA.XETRA","timestamp":1700000000,"close":85.12,"change":0.42,"change_p":0.49,"volume":120000}`,
		"/fundamentals/": `{
			"General":{"Code":"IWDA","Name":"iShares Core MSCI World","Type":"ETF","Exchange":"XETRA","CurrencyCode":"EUR","CategoryName":"Global Large-Cap Blend"},
			"Highlights":{"PERatio":18.2},
			"Technicals":{"52WeekHigh":90.1,"52WeekLow":70.3},
			"ETF_Data":{"Net_Expense_Ratio":"0.20","TotalAssets":50000000000}
		}`,
	})
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	quote, err := client.GetQuote(context.Background(), "IWDA.XETRA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 85.12 {
		t.Errorf("expected price 85.12, got %f", quote.Price)
	}
	if quote.Currency != "EUR" {
		t.Errorf("expected EUR, got %q", quote.Currency)
	}
	if quote.Exchange != "XETRA" {
		t.Errorf("expected XETRA, got %q", quote.Exchange)
	}
	if quote.ExpenseRatio != 0.20 {
		t.Errorf("expected TER 0.20 parsed from string, got %f", quote.ExpenseRatio)
	}
	if quote.Volume != 120000 {
		t.Errorf("expected volume 120000, got %d", quote.Volume)
	}
	if quote.Category != "Global Large-Cap Blend" {
		t.Errorf("unexpected category %q", quote.Category)
	}
}

func TestGetQuote_FundamentalsFailureDegrades(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/real-time/": `{"code":"XYZ","close":"12.5"}`,
	})
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	quote, err := client.GetQuote(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("a missing fundamentals document must not fail the quote: %v", err)
	}
	if quote.Price != 12.5 {
		t.Errorf("expected price 12.5 from numeric string, got %f", quote.Price)
	}
	if quote.Currency != "" {
		t.Errorf("expected no currency, got %q", quote.Currency)
	}
}

func TestGetQuote_NAPlaceholder(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/real-time/": `{"code":"XYZ","close":"NA","change":"NA","volume":"NA"}`,
	})
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	quote, err := client.GetQuote(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 0 {
		t.Errorf("NA close must parse to 0, got %f", quote.Price)
	}
}

func TestGetQuote_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := client.GetQuote(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/search/": `[
			{"Code":"IWDA","Exchange":"XETRA","Name":"iShares Core MSCI World","Type":"ETF","Country":"Germany","Currency":"EUR","ISIN":"IE00B4L5Y983","previousClose":85.4},
			{"Code":"IWDA","Exchange":"LSE","Name":"iShares Core MSCI World","Type":"ETF","Country":"UK","Currency":"USD","ISIN":"IE00B4L5Y983","previousClose":92.1}
		]`,
	})
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)
	candidates, err := client.Search(context.Background(), "IE00B4L5Y983")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	c := candidates[0]
	if c.Symbol != "IWDA" || c.Exchange != "XETRA" || c.Currency != "EUR" || c.ISIN != "IE00B4L5Y983" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if c.PreviousClose != 85.4 {
		t.Errorf("expected previous close 85.4, got %f", c.PreviousClose)
	}
}
