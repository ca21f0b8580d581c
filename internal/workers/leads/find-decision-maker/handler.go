// internal/workers/leads/find-decision-maker/handler.go
package finddecisionmaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"leadscout-workers/internal/common/database"
	commonerrors "leadscout-workers/internal/common/errors"
	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/common/metrics"
	"leadscout-workers/internal/enrichment"
	"leadscout-workers/internal/leadstore"
)

const (
	TaskType = "find-decision-maker"
)

var (
	ErrInvalidLeadInput   = errors.New("INVALID_LEAD_INPUT")
	ErrEnrichmentInFlight = errors.New("ENRICHMENT_GUARD_FAILED")
)

// DecisionMakerFinder is the enrichment pipeline surface the handler needs.
type DecisionMakerFinder interface {
	FindDecisionMaker(ctx context.Context, req enrichment.Request) *enrichment.Result
}

// ResultStore persists enrichment outcomes.
type ResultStore interface {
	SaveResult(ctx context.Context, req enrichment.Request, result *enrichment.Result) (*leadstore.Record, error)
}

// LeadIndexer mirrors records into the search index.
type LeadIndexer interface {
	IndexRecord(ctx context.Context, record *leadstore.Record) error
}

type Handler struct {
	config   *Config
	pipeline DecisionMakerFinder
	store    ResultStore
	indexer  LeadIndexer
	redis    *database.RedisClient
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, pipeline DecisionMakerFinder, store ResultStore, indexer LeadIndexer, redis *database.RedisClient, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:   config,
		pipeline: pipeline,
		store:    store,
		indexer:  indexer,
		redis:    redis,
		errors:   commonerrors.NewErrorHandler(scoped),
		logger:   scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job,
			commonerrors.NewInvalidLeadInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, h.toStandardError(&input, err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	code := "INTERNAL_ERROR"
	if stdErr, ok := err.(*commonerrors.StandardError); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errors.HandleJobError(context.Background(), client, job, err)
}

// toStandardError maps execute's sentinel errors onto the shared error
// vocabulary so BPMN conversion and retry policy apply uniformly.
func (h *Handler) toStandardError(input *Input, err error) error {
	switch {
	case errors.Is(err, ErrInvalidLeadInput):
		return commonerrors.NewInvalidLeadInputError(err.Error())
	case errors.Is(err, ErrEnrichmentInFlight):
		return commonerrors.NewEnrichmentGuardFailedError(err)
	case errors.Is(err, leadstore.ErrDuplicateLead):
		return commonerrors.NewDuplicateEnrichmentError(guardKey(input.toRequest()))
	case errors.Is(err, leadstore.ErrLeadPersistFailed):
		return commonerrors.NewLeadPersistFailedError(err)
	default:
		return err
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.BusinessName) == "" || strings.TrimSpace(input.State) == "" {
		return nil, fmt.Errorf("%w: businessName and state are required", ErrInvalidLeadInput)
	}

	req := input.toRequest()

	// One enrichment per business at a time. The guard expires on its own
	// so a crashed run never wedges the lead.
	guardKey := guardKey(req)
	acquired, err := h.redis.SetNX(ctx, guardKey, "1", h.config.GuardTTL)
	if err != nil {
		h.logger.Warn("guard check failed, proceeding without guard", map[string]interface{}{
			"key":   guardKey,
			"error": err.Error(),
		})
	} else if !acquired {
		return nil, fmt.Errorf("%w: enrichment already running for %s", ErrEnrichmentInFlight, req.BusinessName)
	} else {
		defer func() {
			if delErr := h.redis.Del(context.Background(), guardKey); delErr != nil {
				h.logger.Warn("guard release failed, ttl will clean up", map[string]interface{}{
					"key":   guardKey,
					"error": delErr.Error(),
				})
			}
		}()
	}

	result := h.pipeline.FindDecisionMaker(ctx, req)

	record, err := h.store.SaveResult(ctx, req, result)
	if err != nil {
		if errors.Is(err, leadstore.ErrDuplicateLead) {
			h.logger.Info("enrichment already recorded, completing with pipeline result", map[string]interface{}{
				"business": req.BusinessName,
			})
			return buildOutput("", result), nil
		}
		return nil, err
	}

	if idxErr := h.indexer.IndexRecord(ctx, record); idxErr != nil {
		h.logger.Warn("lead indexing failed, postgres remains source of truth", map[string]interface{}{
			"leadId": record.ID,
			"error":  idxErr.Error(),
		})
	}

	return buildOutput(record.ID, result), nil
}

func buildOutput(leadID string, result *enrichment.Result) *Output {
	output := &Output{
		Found:  result != nil,
		LeadID: leadID,
	}
	if result != nil {
		output.DecisionMaker = &DecisionMaker{
			Name:       result.Name,
			Title:      result.Title,
			Confidence: result.Confidence,
			Source:     result.Source,
		}
		if result.Email != nil {
			output.Email = &EmailContact{
				Email:      result.Email.Email,
				Confidence: result.Email.Confidence,
				Type:       result.Email.Type,
			}
		}
	}
	return output
}

func guardKey(req enrichment.Request) string {
	return fmt.Sprintf("enrichment:inflight:%s:%s:%s",
		strings.ToLower(req.BusinessName),
		strings.ToLower(req.City),
		strings.ToLower(req.State))
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)

	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.Key,
		"found":  output.Found,
	})
}

// Execute method for direct usage
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
