// internal/enrichment/extract_test.go
package enrichment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadscout-workers/internal/common/logger"
)

func testBusinessContext() BusinessContext {
	return NewBusinessContext("Tony's Pizza", "Brooklyn", "NY", "", "https://tonyspizza.com")
}

func TestExtractor_DecisionMaker_Success(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{decisionMakerJSON("Tony Russo", "Owner", 85)},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	bundle := testBundle(SearchResult{
		Title:   "Tony's Pizza - About",
		Snippet: "Tony Russo has owned Tony's Pizza since 1985",
		Link:    "https://tonyspizza.com/about",
	})

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(), bundle)

	assert.NoError(t, err)
	assert.NotNil(t, candidate)
	assert.Equal(t, "Tony Russo", candidate.Name)
	assert.Equal(t, "Owner", candidate.Title)
	assert.Equal(t, 85, candidate.Confidence)
	assert.Equal(t, "https://tonyspizza.com/about", candidate.Source)
}

func TestExtractor_DecisionMaker_FencedResponse(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{"```json\n" + decisionMakerJSON("Tony Russo", "Owner", 80) + "\n```"},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.NoError(t, err)
	assert.NotNil(t, candidate)
	assert.Equal(t, "Tony Russo", candidate.Name)
}

func TestExtractor_DecisionMaker_NullName(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{`{"name": null, "confidence": 0, "reasoning": "nobody named"}`},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	// A clean negative, not an error.
	assert.NoError(t, err)
	assert.Nil(t, candidate)
}

func TestExtractor_DecisionMaker_RejectsSingleTokenName(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{decisionMakerJSON("Tony", "Owner", 90)},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.NoError(t, err)
	assert.Nil(t, candidate)
}

func TestExtractor_DecisionMaker_MalformedResponse(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{"I think the owner is probably Tony Russo."},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Nil(t, candidate)
}

func TestExtractor_DecisionMaker_SchemaViolation(t *testing.T) {
	// Valid JSON that breaks the contract: confidence is a string.
	llm := &fakeCompletionClient{
		responses: []string{`{"name": "Tony Russo", "confidence": "very high"}`},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Nil(t, candidate)
}

func TestExtractor_DecisionMaker_ClampsConfidence(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{decisionMakerJSON("Tony Russo", "Owner", 150)},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.NoError(t, err)
	assert.NotNil(t, candidate)
	assert.Equal(t, 100, candidate.Confidence)
}

func TestExtractor_DecisionMaker_LLMError(t *testing.T) {
	llm := &fakeCompletionClient{err: ErrCompletionTimeout}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	candidate, err := extractor.DecisionMaker(context.Background(), testBusinessContext(),
		testBundle(SearchResult{Title: "t", Snippet: "s", Link: "https://a.com"}))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompletionTimeout))
	assert.Nil(t, candidate)
}

func TestExtractor_Email_Success(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{emailJSON("tony@tonyspizza.com", "personal", 80)},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	email, err := extractor.Email(context.Background(), "Tony Russo", testBusinessContext(),
		testBundle(SearchResult{Title: "Contact", Snippet: "tony@tonyspizza.com", Link: "https://tonyspizza.com/contact"}))

	assert.NoError(t, err)
	assert.NotNil(t, email)
	assert.Equal(t, "tony@tonyspizza.com", email.Email)
	assert.Equal(t, EmailTypePersonal, email.Type)
	assert.Equal(t, 80, email.Confidence)
}

func TestExtractor_Email_BusinessAddressAccepted(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{emailJSON("info@tonyspizza.com", "business", 60)},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	email, err := extractor.Email(context.Background(), "Tony Russo", testBusinessContext(),
		testBundle(SearchResult{Title: "Contact", Snippet: "reach us at info@tonyspizza.com", Link: "https://tonyspizza.com"}))

	assert.NoError(t, err)
	assert.NotNil(t, email)
	assert.Equal(t, "info@tonyspizza.com", email.Email)
	assert.Equal(t, EmailTypeBusiness, email.Type)
}

func TestExtractor_Email_FallsBackToEvidenceScan(t *testing.T) {
	// The model declines but the evidence plainly contains an address.
	llm := &fakeCompletionClient{
		responses: []string{`{"email": null, "confidence": 0, "type": null}`},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	email, err := extractor.Email(context.Background(), "Tony Russo", testBusinessContext(),
		testBundle(SearchResult{Title: "Contact page", Snippet: "Questions? Email info@business.com anytime", Link: "https://business.com/contact"}))

	assert.NoError(t, err)
	assert.NotNil(t, email)
	assert.Equal(t, "info@business.com", email.Email)
	assert.Equal(t, EmailTypeBusiness, email.Type)
	assert.Equal(t, "https://business.com/contact", email.Source)
}

func TestExtractor_Email_NoEmailAnywhere(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{`{"email": null, "confidence": 0, "type": null}`},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	email, err := extractor.Email(context.Background(), "Tony Russo", testBusinessContext(),
		testBundle(SearchResult{Title: "About", Snippet: "no contact details here", Link: "https://business.com"}))

	assert.NoError(t, err)
	assert.Nil(t, email)
}

func TestExtractor_Email_MalformedResponseStillScans(t *testing.T) {
	llm := &fakeCompletionClient{
		responses: []string{"not json"},
	}
	extractor := NewExtractor(llm, logger.NewTestLogger(t))

	email, err := extractor.Email(context.Background(), "Tony Russo", testBusinessContext(),
		testBundle(SearchResult{Title: "Contact", Snippet: "write to hello@tonyspizza.com", Link: "https://tonyspizza.com"}))

	assert.NoError(t, err)
	assert.NotNil(t, email)
	assert.Equal(t, "hello@tonyspizza.com", email.Email)
}
