package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mkamphuis/fundfolio/internal/models"
	"github.com/mkamphuis/fundfolio/internal/store"
)

var ErrRefreshInProgress = errors.New("a quote refresh is already in progress")

// QuoteResolver resolves one holding's identifiers to a quote result
type QuoteResolver interface {
	Resolve(ctx context.Context, req models.QuoteRequest) models.QuoteResult
}

// RefreshService orchestrates quote refresh cycles: it fans out one
// resolution per holding, merges the results back into the holdings by id,
// recomputes metrics and atomically replaces the session snapshot.
type RefreshService struct {
	store    *store.SessionStore
	resolver QuoteResolver
	busy     atomic.Bool
}

// NewRefreshService creates a new RefreshService
func NewRefreshService(store *store.SessionStore, resolver QuoteResolver) *RefreshService {
	return &RefreshService{
		store:    store,
		resolver: resolver,
	}
}

// Refresh runs one refresh cycle over the current holdings snapshot.
// Requests issued while a cycle is in flight are rejected with
// ErrRefreshInProgress; in-flight resolutions are never cancelled by a new
// request. Results are merged only after every resolution has settled.
func (s *RefreshService) Refresh(ctx context.Context) ([]models.Holding, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer s.busy.Store(false)
	defer TrackTime("Refresh", time.Now())

	holdings := s.store.Holdings()
	if len(holdings) == 0 {
		return holdings, nil
	}

	results := make([]models.QuoteResult, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range holdings {
		g.Go(func() error {
			results[i] = s.resolver.Resolve(gctx, models.QuoteRequest{
				ID:     h.ID,
				ISIN:   h.ISIN,
				Ticker: h.Ticker,
			})
			return nil
		})
	}
	// Resolutions never fail, the group is used for fan-in only
	_ = g.Wait()

	resolved := 0
	for i := range holdings {
		holdings[i] = MergeQuote(holdings[i], results[i])
		if results[i].CurrentPrice != nil {
			resolved++
		}
	}
	log.Infof("quote refresh resolved %d/%d holdings", resolved, len(holdings))

	newInvestment, policy := s.store.InvestmentParams()
	holdings = ComputeMetrics(holdings, newInvestment, policy)
	s.store.Replace(holdings)

	return holdings, nil
}

// Recompute rederives metrics for the current snapshot without fetching
// quotes, used after quantity or investment-parameter changes
func (s *RefreshService) Recompute() []models.Holding {
	newInvestment, policy := s.store.InvestmentParams()
	holdings := ComputeMetrics(s.store.Holdings(), newInvestment, policy)
	s.store.Replace(holdings)
	return holdings
}

// MergeQuote folds a resolver result into a holding. The one merge rule for
// prices lives here: a result without a price keeps the holding's previous
// price, while metadata and descriptive fields are overwritten whenever the
// resolver saw any quote.
func MergeQuote(prev models.Holding, result models.QuoteResult) models.Holding {
	h := prev.Clone()

	if result.CurrentPrice != nil {
		price := *result.CurrentPrice
		amount := h.Quantity * price
		h.CurrentPrice = &price
		h.CurrentAmount = &amount
		h.Currency = result.Currency
	} else if h.CurrentPrice != nil {
		// Keep the previous price; the amount still derives from it
		amount := h.Quantity * *h.CurrentPrice
		h.CurrentAmount = &amount
	}
	h.CurrencyMismatch = result.CurrencyMismatch

	if result.Symbol != "" {
		h.PriceSourceSymbol = result.Symbol
	}
	if result.Exchange != "" {
		h.PriceSourceExchange = result.Exchange
	}
	if result.Category != "" {
		h.Category = result.Category
	}
	if result.DayChange != nil {
		h.DayChange = result.DayChange
	}
	if result.DayChangePercent != nil {
		h.DayChangePercent = result.DayChangePercent
	}
	if result.Volume != nil {
		h.Volume = result.Volume
	}
	if result.PERatio != nil {
		h.PERatio = result.PERatio
	}
	if result.High52Week != nil {
		h.High52Week = result.High52Week
	}
	if result.Low52Week != nil {
		h.Low52Week = result.Low52Week
	}
	if result.ExpenseRatio != nil {
		h.ExpenseRatio = result.ExpenseRatio
	}
	if result.FundSize != nil {
		h.FundSize = result.FundSize
	}

	return h
}
