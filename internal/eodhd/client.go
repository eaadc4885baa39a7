// Package eodhd provides a client for the EODHD API
// https://eodhd.com/financial-apis/
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mkamphuis/fundfolio/internal/models"
)

const (
	defaultBaseURL   = "https://eodhd.com/api"
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 10 // requests per second
)

// Client is an HTTP client for the EODHD API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new EODHD client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateLimit),
	}
}

// NewClientWithBaseURL creates a new EODHD client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// GetQuote fetches a real-time quote for a symbol, merged with the
// fundamentals document for currency, exchange and descriptive fields.
// A fundamentals failure degrades to a quote without currency; only a
// failed real-time lookup is an error.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.ProviderQuote, error) {
	var rt realTimeResponse
	if err := c.get(ctx, "/real-time/"+url.PathEscape(symbol), nil, &rt); err != nil {
		return nil, err
	}

	quote := &models.ProviderQuote{
		Symbol:           symbol,
		Price:            float64(rt.Close),
		DayChange:        float64(rt.Change),
		DayChangePercent: float64(rt.ChangePercent),
		Volume:           int64(rt.Volume),
	}
	if rt.Code != "" {
		quote.Symbol = rt.Code
	}

	var fd fundamentalsResponse
	if err := c.get(ctx, "/fundamentals/"+url.PathEscape(symbol), nil, &fd); err != nil {
		log.Debugf("fundamentals lookup for %s failed, quote has no currency: %v", symbol, err)
		return quote, nil
	}

	quote.Name = fd.General.Name
	quote.Exchange = fd.General.Exchange
	quote.Currency = fd.General.CurrencyCode
	quote.Category = fd.General.CategoryName
	quote.PERatio = float64(fd.Highlights.PERatio)
	quote.High52Week = float64(fd.Technicals.High52Week)
	quote.Low52Week = float64(fd.Technicals.Low52Week)
	quote.ExpenseRatio = float64(fd.ETFData.NetExpenseRatio)
	quote.FundSize = float64(fd.ETFData.TotalAssets)

	return quote, nil
}

// Search performs a provider text search, typically on an ISIN
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchCandidate, error) {
	var results []searchResponse
	if err := c.get(ctx, "/search/"+url.PathEscape(query), nil, &results); err != nil {
		return nil, err
	}

	candidates := make([]models.SearchCandidate, len(results))
	for i, r := range results {
		candidates[i] = models.SearchCandidate{
			Symbol:        r.Code,
			Name:          r.Name,
			Exchange:      r.Exchange,
			Currency:      r.Currency,
			ISIN:          r.ISIN,
			Type:          r.Type,
			PreviousClose: float64(r.PreviousClose),
		}
	}

	return candidates, nil
}

// get performs a rate-limited GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d for %s: %s", resp.StatusCode, path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
