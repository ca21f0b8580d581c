// internal/enrichment/pipeline.go
package enrichment

import (
	"context"

	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/common/metrics"
)

type PipelineConfig struct {
	ResultsPerQuery int
}

// Pipeline wires query building, search aggregation, extraction,
// verification, and contact enrichment into the single FindDecisionMaker
// operation.
type Pipeline struct {
	aggregator *Aggregator
	extractor  *Extractor
	verifier   *Verifier
	contact    *ContactEnricher
	logger     logger.Logger
}

func NewPipeline(config *PipelineConfig, provider SearchProvider, llm CompletionClient, log logger.Logger) *Pipeline {
	perQuery := 10
	if config != nil && config.ResultsPerQuery > 0 {
		perQuery = config.ResultsPerQuery
	}

	aggregator := NewAggregator(provider, perQuery, log)
	extractor := NewExtractor(llm, log)

	return &Pipeline{
		aggregator: aggregator,
		extractor:  extractor,
		verifier:   NewVerifier(provider, log),
		contact:    NewContactEnricher(aggregator, extractor, log),
		logger: log.With(map[string]interface{}{
			"component": "pipeline",
		}),
	}
}

// FindDecisionMaker runs the full enrichment for one business. It returns
// nil when no decision maker can be established, and it never panics: any
// panic from a stage is recovered and reported as a nil result.
func (p *Pipeline) FindDecisionMaker(ctx context.Context, req Request) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panicked, returning no result", map[string]interface{}{
				"business": req.BusinessName,
				"panic":    r,
			})
			metrics.PipelineRuns.WithLabelValues("panic").Inc()
			result = nil
		}
	}()

	bctx := NewBusinessContext(req.BusinessName, req.City, req.State, req.Address, req.Website)

	p.logger.Info("starting enrichment", map[string]interface{}{
		"business": bctx.BusinessName,
		"location": bctx.Location(),
		"industry": bctx.Industry,
	})

	queries := BuildSearchQueries(bctx)
	bundle := p.aggregator.Collect(ctx, queries)
	if bundle.Empty() {
		p.logger.Info("no evidence found, stopping", map[string]interface{}{
			"business": bctx.BusinessName,
		})
		metrics.PipelineRuns.WithLabelValues("no_evidence").Inc()
		return nil
	}

	candidate, err := p.extractor.DecisionMaker(ctx, bctx, bundle)
	if err != nil {
		p.logger.Warn("extraction failed", map[string]interface{}{
			"business": bctx.BusinessName,
			"error":    err.Error(),
		})
		metrics.PipelineRuns.WithLabelValues("extraction_failed").Inc()
		return nil
	}
	if candidate == nil {
		p.logger.Info("no decision maker in evidence", map[string]interface{}{
			"business": bctx.BusinessName,
		})
		metrics.PipelineRuns.WithLabelValues("no_candidate").Inc()
		return nil
	}

	boost := p.verifier.Boost(ctx, candidate.Name, bctx.BusinessName, bctx.Location())
	confidence := clampConfidence(candidate.Confidence + boost)

	email, err := p.contact.Enrich(ctx, candidate.Name, bctx)
	if err != nil {
		p.logger.Warn("contact enrichment failed, keeping decision maker", map[string]interface{}{
			"business": bctx.BusinessName,
			"error":    err.Error(),
		})
		email = nil
	}

	p.logger.Info("enrichment completed", map[string]interface{}{
		"business":   bctx.BusinessName,
		"name":       candidate.Name,
		"confidence": confidence,
		"boost":      boost,
		"hasEmail":   email != nil,
	})
	metrics.PipelineRuns.WithLabelValues("found").Inc()

	return &Result{
		Name:       candidate.Name,
		Title:      candidate.Title,
		Confidence: confidence,
		Source:     candidate.Source,
		Email:      email,
	}
}
