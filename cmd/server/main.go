// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fitcoach-backend/internal/common/config"
	"fitcoach-backend/internal/common/database"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/common/observability"
	"fitcoach-backend/internal/history"
	"fitcoach-backend/internal/planner"
	"fitcoach-backend/internal/planner/advice"
	"fitcoach-backend/internal/planner/assembly"
	"fitcoach-backend/internal/planner/intent"
	"fitcoach-backend/internal/planner/retrieval"
	"fitcoach-backend/internal/planner/scoring"
	"fitcoach-backend/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fitcoach backend...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the planning pipeline ---
	searchClient := retrieval.NewESClient(esClient.Client, cfg.Planner.ExerciseIndex)

	scorer := scoring.NewScorer(scoring.Weights{
		ExactEquipment:        cfg.Planner.Scoring.ExactEquipment,
		NoEquipmentBodyweight: cfg.Planner.Scoring.NoEquipmentBodyweight,
		LooseBodyweight:       cfg.Planner.Scoring.LooseBodyweight,
		BodyPartMatch:         cfg.Planner.Scoring.BodyPartMatch,
		MinInclusionScore:     cfg.Planner.Scoring.MinInclusionScore,
	})

	retriever := retrieval.NewRetriever(&retrieval.Config{
		PrimarySize:          cfg.Planner.PrimarySearchSize,
		FallbackSize:         cfg.Planner.FallbackSearchSize,
		RelaxationMultiplier: cfg.Planner.RelaxationMultiplier,
	}, searchClient, scorer, log)

	assembler := assembly.NewAssembler(&assembly.Config{
		MinutesPerExercise: cfg.Planner.MinutesPerExercise,
		MinExercisesPerDay: cfg.Planner.MinExercisesPerDay,
	}, log)

	extractor := intent.NewExtractor(&intent.Config{
		FuzzyThreshold: cfg.Planner.FuzzyThreshold,
	}, log)

	var advisor advice.Advisor
	if cfg.Advisor.BaseURL != "" {
		advisor = advice.NewMistralAdvisor(&advice.Config{
			BaseURL:     cfg.Advisor.BaseURL,
			APIKey:      cfg.Advisor.APIKey,
			Model:       cfg.Advisor.Model,
			Temperature: cfg.Advisor.Temperature,
			MaxTokens:   cfg.Advisor.MaxTokens,
			Timeout:     config.GetDuration(cfg.Advisor.Timeout),
			MaxRetries:  cfg.Advisor.MaxRetries,
		}, log)
		zapLog.Info("LLM advisor enabled", zap.String("model", cfg.Advisor.Model))
	} else {
		zapLog.Info("LLM advisor disabled, advice will be rule-based")
	}
	annotator := advice.NewAnnotator(advisor, log)

	p := planner.New(extractor, retriever, scorer, assembler, annotator, obs, log)

	// --- Wire history persistence ---
	cache := history.NewCache(redisClient.Client, config.GetDuration(cfg.History.CacheTTL), log)
	store := history.NewStore(esClient.Client, cfg.History.Index, cache, log)

	// --- HTTP server ---
	router := server.NewRouter(p, store, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
