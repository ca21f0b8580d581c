// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leadscout-workers/internal/common/camunda"
	"leadscout-workers/internal/common/config"
	"leadscout-workers/internal/common/database"
	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/common/observability"
	"leadscout-workers/internal/enrichment"
	"leadscout-workers/internal/leadstore"
	fdm "leadscout-workers/internal/workers/leads/find-decision-maker"
	"leadscout-workers/pkg/registry"
)

const activityRegistryPath = "configs/activity-registry.json"

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

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Activity Registry ---
	reg, err := registry.LoadRegistry(activityRegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	activity, err := reg.FindByTaskType(fdm.TaskType)
	if err != nil {
		zapLog.Fatal("worker not registered", zap.Error(err))
	}
	zapLog.Info("activity registry loaded",
		zap.String("version", reg.Version),
		zap.String("activity", activity.ID),
	)

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

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
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Build Enrichment Pipeline ---
	searchClient := enrichment.NewSearchClient(&enrichment.SearchConfig{
		BaseURL:    cfg.APIs.WebSearch.BaseURL,
		APIKey:     cfg.APIs.WebSearch.APIKey,
		MaxResults: cfg.APIs.WebSearch.MaxResults,
		Timeout:    config.GetDuration(cfg.APIs.WebSearch.Timeout),
	}, log)

	genaiClient := enrichment.NewGenAIClient(&enrichment.GenAIConfig{
		BaseURL:     cfg.APIs.GenAI.BaseURL,
		APIKey:      cfg.APIs.GenAI.APIKey,
		Model:       cfg.APIs.GenAI.Model,
		MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		Temperature: cfg.APIs.GenAI.Temperature,
		MaxRetries:  cfg.APIs.GenAI.MaxRetries,
		Timeout:     config.GetDuration(cfg.APIs.GenAI.Timeout),
	}, log)

	pipeline := enrichment.NewPipeline(&enrichment.PipelineConfig{
		ResultsPerQuery: cfg.APIs.WebSearch.MaxResults,
	}, searchClient, genaiClient, log)

	store := leadstore.NewStore(pg.GetDB(), log)
	indexer := leadstore.NewIndexer(esClient, cfg.Database.Elasticsearch.LeadIndex, log)

	zapLog.Info("Enrichment pipeline initialized")

	// --- Register Worker ---
	var workers []*camunda.CamundaWorker
	if config.IsWorkerEnabled(cfg, fdm.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, fdm.TaskType)
		handler := fdm.NewHandler(
			&fdm.Config{
				Timeout:         config.GetDuration(wcfg.Timeout),
				GuardTTL:        5 * time.Minute,
				ResultsPerQuery: cfg.APIs.WebSearch.MaxResults,
				LeadIndex:       cfg.Database.Elasticsearch.LeadIndex,
			},
			pipeline, store, indexer, redis, log,
		)
		workers = append(workers, camunda.NewWorker(
			camundaClient.GetClient(),
			fdm.TaskType,
			camunda.WorkerOptions{
				MaxJobsActive: wcfg.MaxJobsActive,
				Timeout:       config.GetDuration(wcfg.Timeout),
				Observer:      obs,
			},
			handler.Handle,
			zapLog,
		))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", fdm.TaskType))
	}

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
