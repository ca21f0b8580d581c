// internal/enrichment/contact.go
package enrichment

import (
	"context"

	"leadscout-workers/internal/common/logger"
)

// ContactEnricher finds a contact email for an already-identified person.
// It runs its own, smaller search pass so a failure here never disturbs the
// decision-maker result it decorates.
type ContactEnricher struct {
	aggregator *Aggregator
	extractor  *Extractor
	logger     logger.Logger
}

func NewContactEnricher(aggregator *Aggregator, extractor *Extractor, log logger.Logger) *ContactEnricher {
	return &ContactEnricher{
		aggregator: aggregator,
		extractor:  extractor,
		logger: log.With(map[string]interface{}{
			"component": "contact-enricher",
		}),
	}
}

// Enrich returns nil with a nil error when no email can be found. That is
// a normal outcome, not a failure.
func (c *ContactEnricher) Enrich(ctx context.Context, person string, bctx BusinessContext) (*EmailCandidate, error) {
	queries := BuildEmailSearchQueries(person, bctx.BusinessName, bctx.Location(), bctx.Website)

	bundle := c.aggregator.Collect(ctx, queries)
	if bundle.Empty() {
		c.logger.Info("no email evidence found", map[string]interface{}{
			"person":   person,
			"business": bctx.BusinessName,
		})
		return nil, nil
	}

	return c.extractor.Email(ctx, person, bctx, bundle)
}
