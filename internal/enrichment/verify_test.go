// internal/enrichment/verify_test.go
package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadscout-workers/internal/common/logger"
)

func TestVerifier_Boost_CooccurrenceOnly(t *testing.T) {
	provider := &fakeSearchProvider{
		defaults: []SearchResult{
			{Title: "Tony Russo and Tony's Pizza", Snippet: "a local institution", Link: "https://a.com"},
		},
	}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	boost := verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Equal(t, 30, boost)
}

func TestVerifier_Boost_KeywordsCapped(t *testing.T) {
	// Four role keywords present, but only two count.
	provider := &fakeSearchProvider{
		defaults: []SearchResult{
			{Title: "local business profile", Snippet: "the owner and founder, now president and ceo of the company", Link: "https://a.com"},
		},
	}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	boost := verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Equal(t, maxKeywordBoost, boost)
}

func TestVerifier_Boost_MaxesAtFifty(t *testing.T) {
	provider := &fakeSearchProvider{
		defaults: []SearchResult{
			{
				Title:   "Tony Russo, owner and founder of Tony's Pizza",
				Snippet: "Tony Russo owns Tony's Pizza and manages it as president and ceo",
				Link:    "https://a.com",
			},
		},
	}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	boost := verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Equal(t, maxVerificationBoost, boost)
}

func TestVerifier_Boost_NoResults(t *testing.T) {
	provider := &fakeSearchProvider{defaults: []SearchResult{}}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	boost := verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Equal(t, 0, boost)
}

func TestVerifier_Boost_SearchFailure(t *testing.T) {
	provider := &fakeSearchProvider{err: errors.New("search down")}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	boost := verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Equal(t, 0, boost)
}

func TestVerifier_Boost_QueryShape(t *testing.T) {
	provider := &fakeSearchProvider{defaults: []SearchResult{}}
	verifier := NewVerifier(provider, logger.NewTestLogger(t))

	verifier.Boost(context.Background(), "Tony Russo", "Tony's Pizza", "Brooklyn, NY")

	assert.Len(t, provider.calls, 1)
	assert.Equal(t, `"Tony Russo" "Tony's Pizza" Brooklyn, NY`, provider.calls[0])
}
