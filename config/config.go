package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	EODHDKey  string
	GeminiKey string
	Port      string

	// RequiredCurrency is the only settlement currency a resolved price is
	// accepted in
	RequiredCurrency string

	// HomeExchanges are preferred over other venues when a search returns
	// multiple currency-matching listings for the same ISIN
	HomeExchanges []string

	// TickerOverrides maps ISINs to a preferred ticker, tried before any
	// other lookup strategy
	TickerOverrides map[string]string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	eodhdKey := os.Getenv("EODHD_API_KEY")
	if eodhdKey == "" {
		return nil, fmt.Errorf("EODHD_API_KEY environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	currency := os.Getenv("REQUIRED_CURRENCY")
	if currency == "" {
		currency = "EUR"
	}

	exchanges := os.Getenv("HOME_EXCHANGES")
	if exchanges == "" {
		exchanges = "XETRA,F,MU,STU,BE,DU,HM,HA"
	}
	var homeExchanges []string
	for _, e := range strings.Split(exchanges, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			homeExchanges = append(homeExchanges, e)
		}
	}

	overrides, err := parseTickerOverrides(os.Getenv("TICKER_OVERRIDES"))
	if err != nil {
		return nil, err
	}

	return &Config{
		EODHDKey:         eodhdKey,
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		Port:             port,
		RequiredCurrency: strings.ToUpper(currency),
		HomeExchanges:    homeExchanges,
		TickerOverrides:  overrides,
	}, nil
}

// parseTickerOverrides parses a comma-separated list of ISIN=TICKER pairs
func parseTickerOverrides(raw string) (map[string]string, error) {
	overrides := make(map[string]string)
	if raw == "" {
		return overrides, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		isin, ticker, found := strings.Cut(pair, "=")
		isin = strings.TrimSpace(isin)
		ticker = strings.TrimSpace(ticker)
		if !found || isin == "" || ticker == "" {
			return nil, fmt.Errorf("invalid TICKER_OVERRIDES entry %q: expected ISIN=TICKER", pair)
		}
		overrides[strings.ToUpper(isin)] = ticker
	}
	return overrides, nil
}
