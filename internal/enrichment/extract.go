// internal/enrichment/extract.go
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"leadscout-workers/internal/common/logger"
)

var ErrMalformedResponse = errors.New("MALFORMED_LLM_RESPONSE")

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

const decisionMakerSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": ["string", "null"]},
		"title": {"type": ["string", "null"]},
		"confidence": {"type": "number"},
		"reasoning": {"type": ["string", "null"]}
	},
	"required": ["name", "confidence"]
}`

const emailSchema = `{
	"type": "object",
	"properties": {
		"email": {"type": ["string", "null"]},
		"confidence": {"type": "number"},
		"type": {"type": ["string", "null"]},
		"source": {"type": ["string", "null"]}
	},
	"required": ["email"]
}`

// Extractor turns search evidence into structured claims via the LLM,
// enforcing the response contract with JSON schema validation.
type Extractor struct {
	llm    CompletionClient
	logger logger.Logger
}

func NewExtractor(llm CompletionClient, log logger.Logger) *Extractor {
	return &Extractor{
		llm: llm,
		logger: log.With(map[string]interface{}{
			"component": "extractor",
		}),
	}
}

// DecisionMaker asks the model to name the person running the business.
// A nil candidate with a nil error is the clean negative: the evidence
// simply names nobody.
func (e *Extractor) DecisionMaker(ctx context.Context, bctx BusinessContext, bundle *EvidenceBundle) (*Candidate, error) {
	prompt := decisionMakerPrompt(bctx, formatEvidence(bundle))

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	doc, err := parseModelJSON(raw, decisionMakerSchema)
	if err != nil {
		e.logger.Warn("decision maker response failed validation", map[string]interface{}{
			"business": bctx.BusinessName,
			"error":    err.Error(),
		})
		return nil, err
	}

	var parsed struct {
		Name       *string `json:"name"`
		Title      *string `json:"title"`
		Confidence float64 `json:"confidence"`
		Reasoning  *string `json:"reasoning"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if parsed.Name == nil || strings.TrimSpace(*parsed.Name) == "" || parsed.Confidence <= 0 {
		return nil, nil
	}

	name := strings.TrimSpace(*parsed.Name)
	if len(strings.Fields(name)) < 2 {
		e.logger.Info("rejecting single-token candidate name", map[string]interface{}{
			"business": bctx.BusinessName,
			"name":     name,
		})
		return nil, nil
	}

	candidate := &Candidate{
		Name:       name,
		Confidence: clampConfidence(int(parsed.Confidence)),
		Source:     sourceFor(name, bundle),
	}
	if parsed.Title != nil {
		candidate.Title = strings.TrimSpace(*parsed.Title)
	}
	if parsed.Reasoning != nil {
		candidate.Reasoning = strings.TrimSpace(*parsed.Reasoning)
	}
	return candidate, nil
}

// Email asks the model for a contact address for the person. When the model
// comes back empty the evidence is regex-scanned directly, so a bundle that
// contains any email-shaped string never produces a nil result.
func (e *Extractor) Email(ctx context.Context, person string, bctx BusinessContext, bundle *EvidenceBundle) (*EmailCandidate, error) {
	prompt := emailPrompt(person, bctx, formatEvidence(bundle))

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	doc, err := parseModelJSON(raw, emailSchema)
	if err != nil {
		e.logger.Warn("email response failed validation, scanning evidence directly", map[string]interface{}{
			"business": bctx.BusinessName,
			"error":    err.Error(),
		})
		return scanEvidenceForEmail(bundle), nil
	}

	var parsed struct {
		Email      *string `json:"email"`
		Confidence float64 `json:"confidence"`
		Type       *string `json:"type"`
		Source     *string `json:"source"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return scanEvidenceForEmail(bundle), nil
	}

	if parsed.Email == nil || !emailPattern.MatchString(*parsed.Email) {
		return scanEvidenceForEmail(bundle), nil
	}

	candidate := &EmailCandidate{
		Email:      emailPattern.FindString(*parsed.Email),
		Confidence: clampConfidence(int(parsed.Confidence)),
		Type:       EmailTypeBusiness,
	}
	if parsed.Type != nil && strings.EqualFold(*parsed.Type, EmailTypePersonal) {
		candidate.Type = EmailTypePersonal
	}
	if parsed.Source != nil {
		candidate.Source = strings.TrimSpace(*parsed.Source)
	}
	return candidate, nil
}

// parseModelJSON strips markdown fences, validates the payload against the
// schema, and returns the raw JSON document.
func parseModelJSON(raw, schema string) ([]byte, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, errs)
	}

	return []byte(cleaned), nil
}

// sourceFor picks a provenance link for a candidate: the first result that
// mentions the name, else the first result at all.
func sourceFor(name string, bundle *EvidenceBundle) string {
	lower := strings.ToLower(name)
	results := bundle.Results()
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Title), lower) ||
			strings.Contains(strings.ToLower(r.Snippet), lower) {
			return r.Link
		}
	}
	if len(results) > 0 {
		return results[0].Link
	}
	return ""
}

// scanEvidenceForEmail is the regex fallback used when the model declines.
// The first email-shaped string in the evidence wins.
func scanEvidenceForEmail(bundle *EvidenceBundle) *EmailCandidate {
	for _, r := range bundle.Results() {
		if match := emailPattern.FindString(r.Title + " " + r.Snippet); match != "" {
			return &EmailCandidate{
				Email:      match,
				Confidence: 50,
				Type:       EmailTypeBusiness,
				Source:     r.Link,
			}
		}
	}
	return nil
}
