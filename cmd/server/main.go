package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chimera/internal/cache"
	"chimera/internal/clients/amfi"
	"chimera/internal/clients/openai"
	"chimera/internal/config"
	"chimera/internal/database"
	"chimera/internal/modules/budget"
	"chimera/internal/modules/explain"
	"chimera/internal/modules/marketdata"
	"chimera/internal/modules/ranking"
	"chimera/internal/scheduler"
	"chimera/internal/server"
	"chimera/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Chimera")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	store, err := cache.NewRistretto(log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer store.Close()

	// Market data
	amfiClient := amfi.NewClient(cfg.AMFINavURL, log)
	marketRepo := marketdata.NewRepository(db.Conn(), log)
	marketData := marketdata.NewService(amfiClient, marketRepo, cfg.EnableLiveQuotes, log)

	// Ranking
	engine := ranking.NewEngine(log)
	rankingRepo := ranking.NewRepository(db.Conn(), log)
	rankingService := ranking.NewService(marketData, engine, store, rankingRepo, cfg.EnableLiveQuotes, log)

	// Budget and explanations
	ledger := budget.NewLedger(cfg.DailyBudgetLimit, cfg.CostPer1KTokens, log)
	llm := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: time.Duration(cfg.OpenAITimeoutSec) * time.Second,
	}, log)
	explainService := explain.NewService(llm, ledger, store, explain.Options{
		CostProtection: cfg.EnableCostProtection,
		MaxTokens:      cfg.OpenAIMaxTokens,
		Temperature:    cfg.OpenAITemperature,
	}, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.RefreshSchedule, scheduler.NewRefreshJob(marketData, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	if err := sched.AddJob(cfg.CleanupSchedule, scheduler.NewCleanupJob(log, marketRepo, rankingRepo)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	// Prime market data so the first request does not pay for ingest.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := marketData.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Initial market data refresh failed")
		}
	}()

	srv := server.New(server.Config{
		Log:            log,
		Config:         cfg,
		RankingHandler: ranking.NewHandler(rankingService, log),
		ExplainHandler: explain.NewHandler(explainService, log),
		BudgetHandler:  budget.NewHandler(ledger, log),
		SystemHandlers: server.NewSystemHandlers(marketData, log),
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
