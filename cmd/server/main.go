package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/dcd-pricer/internal/config"
	"github.com/anyulbade/dcd-pricer/internal/database"
	"github.com/anyulbade/dcd-pricer/internal/handler"
	"github.com/anyulbade/dcd-pricer/internal/middleware"
	"github.com/anyulbade/dcd-pricer/internal/pricing"
	"github.com/anyulbade/dcd-pricer/internal/repository"
	"github.com/anyulbade/dcd-pricer/internal/scheduler"
	"github.com/anyulbade/dcd-pricer/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	gin.SetMode(cfg.GinMode)

	table, err := cfg.Market.ConventionTable()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid convention table")
	}
	cal, err := cfg.Market.Calendar()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid holiday calendar")
	}
	calc := pricing.NewCalculator(table, cal, nil)

	var (
		pool    *pgxpool.Pool
		journal repository.QuoteJournal = repository.NewNoopJournal()
	)
	if cfg.PersistQuotes {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err = database.NewPool(ctx, cfg.DatabaseURL())
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
		}
		journal = repository.NewQuoteRepository(pool)
	}

	quoteSvc := service.NewQuoteService(calc, cfg.Market, journal)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.PersistQuotes {
		sched := scheduler.New(rootCtx, quoteSvc, time.Duration(cfg.RetentionDays)*24*time.Hour)
		if err := sched.Register(cfg.PurgeCron); err != nil {
			log.Fatal().Err(err).Msg("failed to schedule quote purge")
		}
		sched.Start()
		defer sched.Stop()
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool, len(table.All()), cal.HolidayCount())
	router.GET("/health", healthHandler.Health)

	handler.SetupSwagger(router)
	setupAPIRoutes(router, quoteSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Int("conventions", len(table.All())).
			Int("holidays", cal.HolidayCount()).
			Bool("persist_quotes", cfg.PersistQuotes).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, quoteSvc *service.QuoteService) {
	quoteHandler := handler.NewQuoteHandler(quoteSvc)
	conventionHandler := handler.NewConventionHandler(quoteSvc)
	termSheetHandler := handler.NewTermSheetHandler(service.NewTermSheetService(quoteSvc))

	api := router.Group("/api/v1")
	{
		api.GET("/conventions", conventionHandler.List)
		api.POST("/quotes", quoteHandler.Create)
		api.GET("/quotes", quoteHandler.List)
		api.GET("/quotes/:id", quoteHandler.Get)
		api.POST("/quotes/matrix", quoteHandler.Matrix)
		api.POST("/quotes/payoff", quoteHandler.Payoff)
		api.POST("/quotes/termsheet", termSheetHandler.Create)
	}
}
