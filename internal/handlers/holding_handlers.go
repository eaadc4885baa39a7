package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mkamphuis/fundfolio/internal/models"
	"github.com/mkamphuis/fundfolio/internal/services"
	"github.com/mkamphuis/fundfolio/internal/store"
)

// HoldingHandler handles the holdings endpoints
type HoldingHandler struct {
	store      *store.SessionStore
	refreshSvc *services.RefreshService
	advisorSvc *services.AdvisorService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(store *store.SessionStore, refreshSvc *services.RefreshService, advisorSvc *services.AdvisorService) *HoldingHandler {
	return &HoldingHandler{
		store:      store,
		refreshSvc: refreshSvc,
		advisorSvc: advisorSvc,
	}
}

// Import handles POST /holdings/import: a multipart CSV upload plus an
// optional new_investment form field, replacing the session
func (h *HoldingHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "missing CSV file upload field 'file'",
		})
		return
	}
	defer file.Close()

	newInvestment := 0.0
	if raw := c.PostForm("new_investment"); raw != "" {
		newInvestment, err = strconv.ParseFloat(raw, 64)
		if err != nil || newInvestment < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "new_investment must be a non-negative number",
			})
			return
		}
	}

	holdings, csvErrors, err := ParseHoldingsCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	holdings = services.ComputeTargetAllocations(holdings)
	h.store.ResetSession(holdings, csvErrors, newInvestment)
	// A starting new_investment changes the metrics inputs, so the snapshot
	// must be recomputed before it is returned
	holdings = h.refreshSvc.Recompute()
	log.Infof("imported %d holdings (%d rows skipped)", len(holdings), len(csvErrors))

	c.JSON(http.StatusOK, models.ImportResponse{
		Holdings:  holdings,
		CSVErrors: csvErrors,
		Imported:  len(holdings),
		Skipped:   len(csvErrors),
	})
}

// List handles GET /holdings
func (h *HoldingHandler) List(c *gin.Context) {
	holdings := h.store.Holdings()
	newInvestment, policy := h.store.InvestmentParams()

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Holdings:          holdings,
		TotalCurrentValue: services.TotalCurrentValue(holdings),
		NewInvestment:     newInvestment,
		RoundingPolicy:    policy,
		CSVErrors:         h.store.CSVErrors(),
	})
}

// Refresh handles POST /holdings/refresh
func (h *HoldingHandler) Refresh(c *gin.Context) {
	holdings, err := h.refreshSvc.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrRefreshInProgress) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "refresh_in_progress",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Holdings:          holdings,
		TotalCurrentValue: services.TotalCurrentValue(holdings),
	})
}

// UpdateQuantity handles PUT /holdings/:id/quantity. The edit lives in the
// session only; it is logged, not persisted.
func (h *HoldingHandler) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "quantity must not be negative",
		})
		return
	}

	holding, err := h.store.UpdateQuantity(id, *req.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "holding not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	log.Infof("quantity of %s set to %.4f (session only)", holding.ISIN, *req.Quantity)

	// Return the holding after metrics have been rederived, not the raw edit
	for _, refreshed := range h.refreshSvc.Recompute() {
		if refreshed.ID == id {
			holding = refreshed
			break
		}
	}
	c.JSON(http.StatusOK, holding)
}

// SetInvestment handles PUT /holdings/investment
func (h *HoldingHandler) SetInvestment(c *gin.Context) {
	var req models.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if *req.NewInvestment < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "new_investment must not be negative",
		})
		return
	}
	if req.RoundingPolicy != "" && !models.ValidRoundingPolicy(req.RoundingPolicy) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "rounding_policy must be one of 'up', 'down', 'nearest'",
		})
		return
	}

	h.store.SetInvestmentParams(*req.NewInvestment, req.RoundingPolicy)
	holdings := h.refreshSvc.Recompute()

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Holdings:          holdings,
		TotalCurrentValue: services.TotalCurrentValue(holdings),
		NewInvestment:     *req.NewInvestment,
		RoundingPolicy:    req.RoundingPolicy,
	})
}

// Suggest handles POST /holdings/suggestion
func (h *HoldingHandler) Suggest(c *gin.Context) {
	suggestion, err := h.advisorSvc.Suggest(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrAdvisorDisabled) {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:   "advisor_disabled",
				Message: "set GEMINI_API_KEY to enable suggestions",
			})
			return
		}
		if errors.Is(err, services.ErrNoHoldings) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "no holdings imported",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuggestionResponse{Suggestion: suggestion})
}
