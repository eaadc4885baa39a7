// Package resolver turns an ISIN identifier into a trustworthy quote in the
// required settlement currency, or an explicit unresolved result.
package resolver

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mkamphuis/fundfolio/internal/models"
)

// Provider is the external quote service boundary
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (*models.ProviderQuote, error)
	Search(ctx context.Context, query string) ([]models.SearchCandidate, error)
}

// Resolver maps a QuoteRequest to a QuoteResult through an ordered fallback
// chain. It never returns an error: transport and provider faults degrade
// the failing step to "no result" and the chain continues.
type Resolver struct {
	provider         Provider
	requiredCurrency string
	homeExchanges    map[string]struct{}
	tickerOverrides  map[string]string
}

// New creates a Resolver. homeExchanges are preferred venues for search
// candidate selection; tickerOverrides maps ISINs to a known-good ticker
// tried before any other strategy.
func New(provider Provider, requiredCurrency string, homeExchanges []string, tickerOverrides map[string]string) *Resolver {
	home := make(map[string]struct{}, len(homeExchanges))
	for _, e := range homeExchanges {
		home[strings.ToUpper(e)] = struct{}{}
	}
	overrides := make(map[string]string, len(tickerOverrides))
	for isin, ticker := range tickerOverrides {
		overrides[strings.ToUpper(isin)] = ticker
	}
	return &Resolver{
		provider:         provider,
		requiredCurrency: strings.ToUpper(requiredCurrency),
		homeExchanges:    home,
		tickerOverrides:  overrides,
	}
}

// attempt runs one lookup strategy. The returned quote may be nil when the
// strategy had nothing; trusted=false marks a quote usable only as a
// metadata source, never as a price source.
type attempt func(ctx context.Context, req models.QuoteRequest) (quote *models.ProviderQuote, trusted bool)

// Resolve executes the fallback chain for one request, short-circuiting on
// the first quote with a positive price in the required currency. On a total
// miss the result still carries the identifiers and any metadata seen.
func (r *Resolver) Resolve(ctx context.Context, req models.QuoteRequest) models.QuoteResult {
	attempts := []attempt{
		r.preferredTickerLookup,
		r.isinAsSymbolLookup,
		r.searchLookup,
	}

	var best *models.ProviderQuote
	for _, a := range attempts {
		quote, trusted := a(ctx, req)
		if quote == nil {
			continue
		}
		if trusted && r.accepts(quote) {
			return r.buildResult(req, quote, true)
		}
		best = quote
	}

	return r.buildResult(req, best, false)
}

// accepts reports whether a quote satisfies the resolver's core contract:
// positive price, currency present and equal to the required currency.
// A price without a currency is never a currency match.
func (r *Resolver) accepts(q *models.ProviderQuote) bool {
	return q.Price > 0 && q.Currency != "" && strings.EqualFold(q.Currency, r.requiredCurrency)
}

// preferredTicker returns the request's ticker, falling back to the
// configured ISIN override table
func (r *Resolver) preferredTicker(req models.QuoteRequest) string {
	if req.Ticker != "" {
		return req.Ticker
	}
	return r.tickerOverrides[strings.ToUpper(req.ISIN)]
}

func (r *Resolver) preferredTickerLookup(ctx context.Context, req models.QuoteRequest) (*models.ProviderQuote, bool) {
	ticker := r.preferredTicker(req)
	if ticker == "" {
		return nil, false
	}
	quote, err := r.provider.GetQuote(ctx, ticker)
	if err != nil {
		log.Debugf("preferred ticker lookup %s for %s failed: %v", ticker, req.ISIN, err)
		return nil, false
	}
	return quote, true
}

func (r *Resolver) isinAsSymbolLookup(ctx context.Context, req models.QuoteRequest) (*models.ProviderQuote, bool) {
	if req.ISIN == "" {
		return nil, false
	}
	quote, err := r.provider.GetQuote(ctx, req.ISIN)
	if err != nil {
		log.Debugf("ISIN-as-symbol lookup for %s failed: %v", req.ISIN, err)
		return nil, false
	}
	return quote, true
}

// searchLookup searches the provider for the ISIN and fetches the full quote
// of the best candidate. A candidate matched only on "has price and currency"
// is returned untrusted, purely for metadata.
func (r *Resolver) searchLookup(ctx context.Context, req models.QuoteRequest) (*models.ProviderQuote, bool) {
	if req.ISIN == "" {
		return nil, false
	}
	candidates, err := r.provider.Search(ctx, req.ISIN)
	if err != nil {
		log.Debugf("search lookup for %s failed: %v", req.ISIN, err)
		return nil, false
	}
	if len(candidates) == 0 {
		return nil, false
	}

	if selected := r.selectCandidate(req, candidates); selected != nil {
		quote, err := r.provider.GetQuote(ctx, selected.Symbol)
		if err != nil {
			log.Debugf("quote fetch for search candidate %s (%s) failed: %v", selected.Symbol, req.ISIN, err)
		} else {
			return quote, true
		}
	}

	// Last resort: any candidate with a price and a currency, metadata only
	for _, c := range candidates {
		if c.PreviousClose > 0 && c.Currency != "" {
			return candidateQuote(c), false
		}
	}
	return nil, false
}

// selectCandidate picks the best search candidate by descending priority:
// exact ISIN match in the required currency on a home exchange, then on any
// exchange, then with the preferred ticker symbol.
func (r *Resolver) selectCandidate(req models.QuoteRequest, candidates []models.SearchCandidate) *models.SearchCandidate {
	preferred := r.preferredTicker(req)

	priorities := []func(c models.SearchCandidate) bool{
		func(c models.SearchCandidate) bool {
			_, home := r.homeExchanges[strings.ToUpper(c.Exchange)]
			return home
		},
		func(c models.SearchCandidate) bool { return true },
		func(c models.SearchCandidate) bool {
			return preferred != "" && strings.EqualFold(c.Symbol, preferred)
		},
	}

	for _, matches := range priorities {
		for i := range candidates {
			c := candidates[i]
			if !strings.EqualFold(c.ISIN, req.ISIN) {
				continue
			}
			if !strings.EqualFold(c.Currency, r.requiredCurrency) {
				continue
			}
			if matches(c) {
				return &candidates[i]
			}
		}
	}
	return nil
}

// candidateQuote converts a search candidate into a quote shape so its
// symbol/exchange can serve as fallback metadata
func candidateQuote(c models.SearchCandidate) *models.ProviderQuote {
	return &models.ProviderQuote{
		Symbol:   c.Symbol,
		Name:     c.Name,
		Exchange: c.Exchange,
		Currency: c.Currency,
		Price:    c.PreviousClose,
		Category: c.Type,
	}
}

// buildResult normalizes a quote into the result contract. CurrentPrice and
// Currency are set only for accepted quotes; descriptive fields come from
// whatever quote was seen, regardless of its currency.
func (r *Resolver) buildResult(req models.QuoteRequest, quote *models.ProviderQuote, accepted bool) models.QuoteResult {
	result := models.QuoteResult{
		ID:   req.ID,
		ISIN: req.ISIN,
	}
	if quote == nil {
		return result
	}

	result.Symbol = quote.Symbol
	result.Exchange = quote.Exchange
	result.Category = quote.Category
	result.DayChange = nonZeroPtr(quote.DayChange)
	result.DayChangePercent = nonZeroPtr(quote.DayChangePercent)
	result.PERatio = nonZeroPtr(quote.PERatio)
	result.High52Week = nonZeroPtr(quote.High52Week)
	result.Low52Week = nonZeroPtr(quote.Low52Week)
	result.ExpenseRatio = nonZeroPtr(quote.ExpenseRatio)
	result.FundSize = nonZeroPtr(quote.FundSize)
	if quote.Volume != 0 {
		v := quote.Volume
		result.Volume = &v
	}

	if accepted {
		price := quote.Price
		result.CurrentPrice = &price
		result.Currency = quote.Currency
	} else if quote.Price > 0 && quote.Currency != "" {
		result.CurrencyMismatch = true
	}

	return result
}

func nonZeroPtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
