// internal/enrichment/aggregate.go
package enrichment

import (
	"context"

	"leadscout-workers/internal/common/logger"
)

// maxEvidenceResults bounds how much search evidence one enrichment may
// accumulate before extraction.
const maxEvidenceResults = 20

// EvidenceBundle is the read-only evidence set handed to extraction.
// Results are deduplicated by link in first-seen order.
type EvidenceBundle struct {
	results        []SearchResult
	knowledgeGraph map[string]interface{}
}

// Results returns a copy of the evidence so callers cannot mutate the bundle.
func (b *EvidenceBundle) Results() []SearchResult {
	out := make([]SearchResult, len(b.results))
	copy(out, b.results)
	return out
}

func (b *EvidenceBundle) KnowledgeGraph() map[string]interface{} {
	return b.knowledgeGraph
}

func (b *EvidenceBundle) Len() int {
	return len(b.results)
}

func (b *EvidenceBundle) Empty() bool {
	return len(b.results) == 0 && len(b.knowledgeGraph) == 0
}

// Aggregator runs a query plan against a search provider and folds the
// responses into a bounded evidence bundle. Individual query failures are
// logged and skipped so one bad call never sinks the whole collection.
type Aggregator struct {
	provider SearchProvider
	perQuery int
	logger   logger.Logger
}

func NewAggregator(provider SearchProvider, perQuery int, log logger.Logger) *Aggregator {
	if perQuery <= 0 {
		perQuery = 10
	}
	return &Aggregator{
		provider: provider,
		perQuery: perQuery,
		logger: log.With(map[string]interface{}{
			"component": "aggregator",
		}),
	}
}

// Collect executes queries sequentially in plan order. It stops issuing
// queries once enough raw results have accumulated, keeps the first
// knowledge graph seen, and drops later results that repeat a link.
func (a *Aggregator) Collect(ctx context.Context, queries []string) *EvidenceBundle {
	var raw []SearchResult
	var knowledgeGraph map[string]interface{}

	for _, query := range queries {
		if len(raw) >= maxEvidenceResults {
			break
		}

		results, err := a.provider.Search(ctx, query, a.perQuery)
		if err != nil {
			a.logger.Warn("search query failed, skipping", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
			continue
		}

		for _, r := range results {
			if knowledgeGraph == nil && len(r.KnowledgeGraph) > 0 {
				knowledgeGraph = r.KnowledgeGraph
			}
			raw = append(raw, r)
		}
	}

	seen := make(map[string]bool, len(raw))
	deduped := make([]SearchResult, 0, len(raw))
	for _, r := range raw {
		if r.Link != "" && seen[r.Link] {
			continue
		}
		if r.Link != "" {
			seen[r.Link] = true
		}
		deduped = append(deduped, r)
		if len(deduped) >= maxEvidenceResults {
			break
		}
	}

	a.logger.Info("evidence collected", map[string]interface{}{
		"queries":           len(queries),
		"rawResults":        len(raw),
		"uniqueResults":     len(deduped),
		"hasKnowledgeGraph": knowledgeGraph != nil,
	})

	return &EvidenceBundle{
		results:        deduped,
		knowledgeGraph: knowledgeGraph,
	}
}
