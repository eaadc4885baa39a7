package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mkamphuis/fundfolio/config"
	"github.com/mkamphuis/fundfolio/internal/eodhd"
	"github.com/mkamphuis/fundfolio/internal/gemini"
	"github.com/mkamphuis/fundfolio/internal/handlers"
	"github.com/mkamphuis/fundfolio/internal/middleware"
	"github.com/mkamphuis/fundfolio/internal/resolver"
	"github.com/mkamphuis/fundfolio/internal/services"
	"github.com/mkamphuis/fundfolio/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize the quote provider client and resolver
	quoteClient := eodhd.NewClient(cfg.EODHDKey)
	quoteResolver := resolver.New(quoteClient, cfg.RequiredCurrency, cfg.HomeExchanges, cfg.TickerOverrides)

	// Initialize the optional AI advisor
	var generator services.TextGenerator
	if cfg.GeminiKey != "" {
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		generator = geminiClient
	} else {
		log.Info("GEMINI_API_KEY not set, AI suggestions disabled")
	}

	// Initialize session state and services
	sessionStore := store.NewSessionStore()
	refreshSvc := services.NewRefreshService(sessionStore, quoteResolver)
	advisorSvc := services.NewAdvisorService(sessionStore, generator)

	// Initialize handlers
	holdingHandler := handlers.NewHoldingHandler(sessionStore, refreshSvc, advisorSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Holdings routes
	router.POST("/holdings/import", holdingHandler.Import)
	router.GET("/holdings", holdingHandler.List)
	router.POST("/holdings/refresh", holdingHandler.Refresh)
	router.PUT("/holdings/investment", holdingHandler.SetInvestment)
	router.PUT("/holdings/:id/quantity", holdingHandler.UpdateQuantity)
	router.POST("/holdings/suggestion", holdingHandler.Suggest)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
