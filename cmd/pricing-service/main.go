package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pricetrust/pricing-service/internal/app/background"
	"github.com/pricetrust/pricing-service/internal/config"
	httpdelivery "github.com/pricetrust/pricing-service/internal/delivery/http"
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/kafka"
	"github.com/pricetrust/pricing-service/internal/infrastructure/logger"
	"github.com/pricetrust/pricing-service/internal/infrastructure/metrics"
	"github.com/pricetrust/pricing-service/internal/infrastructure/migrate"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/repository"
	"github.com/pricetrust/pricing-service/internal/infrastructure/sources"
	"github.com/pricetrust/pricing-service/internal/usecase"
	"github.com/pricetrust/pricing-service/internal/usecase/matching"
	"github.com/pricetrust/pricing-service/internal/usecase/scoring"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	slogger := setupLogger(cfg.LogConfig)
	slog.SetDefault(slogger)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PricingDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PricingDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	interval := mustParseDuration("pipeline.interval", cfg.Pipeline.Interval)
	lookback := mustParseDuration("pipeline.lookback", cfg.Pipeline.Lookback)
	minHistorySpan := mustParseDuration("pipeline.min_history_span", cfg.Pipeline.MinHistorySpan)

	// Init repositories
	retailerRepo := repository.NewDefaultRetailerRepository(db)
	rawProductRepo := repository.NewDefaultRawProductRepository(db)
	canonicalRepo := repository.NewDefaultCanonicalProductRepository(db)
	matchRepo := repository.NewDefaultProductMatchRepository(db)
	historyRepo := repository.NewDefaultPriceHistoryRepository(db)
	evaluationRepo := repository.NewDefaultEvaluationRepository(db)
	runRepo := repository.NewDefaultPipelineRunRepository(db)

	// Kafka transport: offer topics in, evaluation and run events out.
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	var publisher domain.PublisherPort
	var offerSources []domain.OfferSource
	if cfg.KafkaService.Enabled {
		publisher = kafka.NewDefaultKafkaPublisher(brokers)
		subscriber := kafka.NewDefaultKafkaSubscriber(brokers)
		for _, src := range cfg.Sources {
			source, err := sources.NewKafkaOfferSource(src.Name, src.Topic, cfg.KafkaService.GroupID, subscriber, slogger)
			if err != nil {
				log.Fatalf("failed to init offer source %s: %v", src.Name, err)
			}
			offerSources = append(offerSources, source)
		}
	}
	if len(offerSources) == 0 {
		log.Fatalf("no offer sources configured")
	}

	matcher := matching.NewMatcher(
		matching.MatcherConfig{},
		canonicalRepo,
		matchRepo,
		slogger,
		matching.NewExactEANStrategy(canonicalRepo),
		matching.NewFuzzyTokenStrategy(canonicalRepo, historyRepo),
	)

	pipelineUC := usecase.NewDefaultPipelineUsecase(
		usecase.PipelineConfig{
			Lookback:        lookback,
			MinHistorySpan:  minHistorySpan,
			DefaultCurrency: cfg.Pipeline.DefaultCurrency,
		},
		offerSources,
		retailerRepo,
		rawProductRepo,
		matcher,
		historyRepo,
		scoring.NewEvaluator(),
		evaluationRepo,
		runRepo,
		publisher,
		metrics.NewPipelineMetrics(),
		logger.NewPGIngestEventLogger(db),
		slogger,
	)

	tasks := background.NewBackgroundTasks(pipelineUC, interval, slogger)
	tasks.StartAll(context.Background())

	router := httpdelivery.NewRouter(pipelineUC)
	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slogger.Info("http server starting", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func mustParseDuration(name, raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid %s duration %q: %v", name, raw, err)
	}
	return d
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
