// Package store holds the session-scoped portfolio state. Nothing here is
// durable: the process owns one snapshot of holdings plus the investment
// parameters, replaced atomically per refresh cycle.
package store

import (
	"errors"
	"sync"

	"github.com/mkamphuis/fundfolio/internal/models"
)

var ErrHoldingNotFound = errors.New("holding not found")

// SessionStore is an in-memory snapshot of holdings and investment
// parameters. Readers always get deep copies; writers replace the snapshot
// under the lock.
type SessionStore struct {
	mu sync.RWMutex

	holdings       []models.Holding
	csvErrors      []string
	newInvestment  float64
	roundingPolicy models.RoundingPolicy
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Holdings returns a deep copy of the current holdings snapshot
func (s *SessionStore) Holdings() []models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneHoldings(s.holdings)
}

// Replace swaps the whole holdings snapshot atomically
func (s *SessionStore) Replace(holdings []models.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = models.CloneHoldings(holdings)
}

// ResetSession installs a freshly imported holdings list with its parse
// errors and starting new-investment amount, discarding previous state
func (s *SessionStore) ResetSession(holdings []models.Holding, csvErrors []string, newInvestment float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = models.CloneHoldings(holdings)
	s.csvErrors = append([]string(nil), csvErrors...)
	s.newInvestment = newInvestment
	s.roundingPolicy = ""
}

// CSVErrors returns the parse errors recorded by the last import
func (s *SessionStore) CSVErrors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.csvErrors...)
}

// InvestmentParams returns the current new-investment amount and rounding policy
func (s *SessionStore) InvestmentParams() (float64, models.RoundingPolicy) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newInvestment, s.roundingPolicy
}

// SetInvestmentParams updates the new-investment amount and rounding policy
func (s *SessionStore) SetInvestmentParams(newInvestment float64, policy models.RoundingPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newInvestment = newInvestment
	s.roundingPolicy = policy
}

// UpdateQuantity changes a single holding's quantity in the session and
// rederives its current amount from the held price. The change is not
// persisted anywhere beyond this snapshot.
func (s *SessionStore) UpdateQuantity(id string, quantity float64) (models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.holdings {
		if s.holdings[i].ID != id {
			continue
		}
		s.holdings[i].Quantity = quantity
		if s.holdings[i].CurrentPrice != nil {
			amount := quantity * *s.holdings[i].CurrentPrice
			s.holdings[i].CurrentAmount = &amount
		}
		return s.holdings[i].Clone(), nil
	}
	return models.Holding{}, ErrHoldingNotFound
}
