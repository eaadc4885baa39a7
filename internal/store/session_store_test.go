package store

import (
	"errors"
	"testing"

	"github.com/mkamphuis/fundfolio/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestSessionStore_HoldingsReturnsCopy(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Holding{{ID: "A", ISIN: "A", Quantity: 1, CurrentPrice: fp(10)}})

	snapshot := s.Holdings()
	snapshot[0].Quantity = 99
	*snapshot[0].CurrentPrice = 99

	fresh := s.Holdings()
	if fresh[0].Quantity != 1 {
		t.Errorf("mutating a snapshot leaked into the store: quantity %f", fresh[0].Quantity)
	}
	if *fresh[0].CurrentPrice != 10 {
		t.Errorf("mutating a snapshot pointer leaked into the store: price %f", *fresh[0].CurrentPrice)
	}
}

func TestSessionStore_ResetSession(t *testing.T) {
	s := NewSessionStore()
	s.SetInvestmentParams(500, models.RoundingPolicyUp)

	s.ResetSession([]models.Holding{{ID: "A", ISIN: "A"}}, []string{"row 3: bad"}, 250)

	if got := s.Holdings(); len(got) != 1 || got[0].ID != "A" {
		t.Fatalf("unexpected holdings after reset: %+v", got)
	}
	if got := s.CSVErrors(); len(got) != 1 || got[0] != "row 3: bad" {
		t.Errorf("unexpected csv errors: %v", got)
	}
	amount, policy := s.InvestmentParams()
	if amount != 250 {
		t.Errorf("expected new investment 250, got %f", amount)
	}
	if policy != "" {
		t.Errorf("reset must clear the rounding policy, got %q", policy)
	}
}

func TestSessionStore_UpdateQuantity(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Holding{{ID: "A", ISIN: "A", Quantity: 2, CurrentPrice: fp(10), CurrentAmount: fp(20)}})

	updated, err := s.UpdateQuantity("A", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("expected quantity 5, got %f", updated.Quantity)
	}
	if updated.CurrentAmount == nil || *updated.CurrentAmount != 50 {
		t.Errorf("expected amount rederived to 50, got %v", updated.CurrentAmount)
	}
}

func TestSessionStore_UpdateQuantityUnknownID(t *testing.T) {
	s := NewSessionStore()
	_, err := s.UpdateQuantity("missing", 1)
	if !errors.Is(err, ErrHoldingNotFound) {
		t.Errorf("expected ErrHoldingNotFound, got %v", err)
	}
}

func TestSessionStore_UpdateQuantityWithoutPrice(t *testing.T) {
	s := NewSessionStore()
	s.Replace([]models.Holding{{ID: "A", ISIN: "A", Quantity: 2}})

	updated, err := s.UpdateQuantity("A", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.CurrentAmount != nil {
		t.Errorf("amount must stay undefined without a price, got %f", *updated.CurrentAmount)
	}
}
