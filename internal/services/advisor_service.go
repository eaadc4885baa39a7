package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkamphuis/fundfolio/internal/models"
	"github.com/mkamphuis/fundfolio/internal/store"
)

var (
	ErrAdvisorDisabled = errors.New("AI advisor is not configured")
	ErrNoHoldings      = errors.New("no holdings imported")
)

// TextGenerator is the AI boundary: a prompt in, free-text advice out
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AdvisorService produces free-text rebalancing suggestions from a
// read-only projection of the current holdings
type AdvisorService struct {
	store     *store.SessionStore
	generator TextGenerator
}

// NewAdvisorService creates a new AdvisorService. A nil generator disables
// the advisor.
func NewAdvisorService(store *store.SessionStore, generator TextGenerator) *AdvisorService {
	return &AdvisorService{
		store:     store,
		generator: generator,
	}
}

// Suggest asks the generator for rebalancing advice over the current snapshot
func (s *AdvisorService) Suggest(ctx context.Context) (string, error) {
	if s.generator == nil {
		return "", ErrAdvisorDisabled
	}

	holdings := s.store.Holdings()
	if len(holdings) == 0 {
		return "", ErrNoHoldings
	}
	newInvestment, _ := s.store.InvestmentParams()

	suggestion, err := s.generator.GenerateContent(ctx, buildRebalancingPrompt(holdings, newInvestment))
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestion: %w", err)
	}
	return suggestion, nil
}

// buildRebalancingPrompt renders the holdings projection the advisor is
// allowed to see: static descriptors plus current and target allocations
func buildRebalancingPrompt(holdings []models.Holding, newInvestment float64) string {
	var sb strings.Builder
	sb.WriteString("You are a portfolio rebalancing assistant. Review the fund/ETF portfolio below and suggest how to rebalance it toward the target allocations.\n\nHoldings:\n")

	for _, h := range holdings {
		sb.WriteString(fmt.Sprintf("- %s: quantity %.4f", h.Name, h.Quantity))
		if h.CurrentPrice != nil {
			sb.WriteString(fmt.Sprintf(", price %.2f", *h.CurrentPrice))
		}
		if h.CurrentAmount != nil {
			sb.WriteString(fmt.Sprintf(", value %.2f", *h.CurrentAmount))
		}
		if h.AllocationPercentage != nil {
			sb.WriteString(fmt.Sprintf(", current allocation %.2f%%", *h.AllocationPercentage))
		}
		sb.WriteString(fmt.Sprintf(", target allocation %.2f%%", h.TargetAllocationPercentage))
		if h.Objective != "" {
			sb.WriteString(", objective: " + h.Objective)
		}
		if h.Type != "" {
			sb.WriteString(", type: " + h.Type)
		}
		sb.WriteString("\n")
	}

	if newInvestment > 0 {
		sb.WriteString(fmt.Sprintf("\nAn additional %.2f is available to invest.\n", newInvestment))
	}
	sb.WriteString("\nProvide concise, actionable rebalancing advice.")

	return sb.String()
}
