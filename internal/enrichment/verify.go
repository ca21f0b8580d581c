// internal/enrichment/verify.go
package enrichment

import (
	"context"
	"fmt"
	"strings"

	"leadscout-workers/internal/common/logger"
)

const (
	cooccurrenceBoost    = 30
	keywordBoost         = 10
	maxKeywordBoost      = 20
	maxVerificationBoost = 50
	verificationResults  = 5
)

// verificationKeywords are role words whose presence near the candidate
// strengthens the ownership claim.
var verificationKeywords = []string{"owner", "ceo", "president", "founder", "manages", "owns"}

// Verifier cross-checks an extracted candidate with one independent search
// and converts what it finds into a bounded confidence boost.
type Verifier struct {
	provider SearchProvider
	logger   logger.Logger
}

func NewVerifier(provider SearchProvider, log logger.Logger) *Verifier {
	return &Verifier{
		provider: provider,
		logger: log.With(map[string]interface{}{
			"component": "verifier",
		}),
	}
}

// Boost returns 0-50. Co-occurrence of the person and business in the
// verification results is worth 30, each role keyword 10 up to 20. A failed
// or empty verification search contributes nothing. It never subtracts.
func (v *Verifier) Boost(ctx context.Context, name, business, location string) int {
	query := fmt.Sprintf("%q %q %s", name, business, location)

	results, err := v.provider.Search(ctx, query, verificationResults)
	if err != nil {
		v.logger.Warn("verification search failed, no boost applied", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
		return 0
	}
	if len(results) == 0 {
		return 0
	}

	var combined strings.Builder
	for _, r := range results {
		combined.WriteString(strings.ToLower(r.Title))
		combined.WriteString(" ")
		combined.WriteString(strings.ToLower(r.Snippet))
		combined.WriteString(" ")
	}
	text := combined.String()

	boost := 0
	if strings.Contains(text, strings.ToLower(name)) && strings.Contains(text, strings.ToLower(business)) {
		boost += cooccurrenceBoost
	}

	kwBoost := 0
	for _, kw := range verificationKeywords {
		if strings.Contains(text, kw) {
			kwBoost += keywordBoost
		}
	}
	if kwBoost > maxKeywordBoost {
		kwBoost = maxKeywordBoost
	}
	boost += kwBoost

	if boost > maxVerificationBoost {
		boost = maxVerificationBoost
	}

	v.logger.Debug("verification boost computed", map[string]interface{}{
		"name":  name,
		"boost": boost,
	})
	return boost
}
