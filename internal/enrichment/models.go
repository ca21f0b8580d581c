// internal/enrichment/models.go
package enrichment

// Request identifies the business a pipeline invocation should enrich.
type Request struct {
	BusinessName string `json:"businessName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
}

// BusinessContext is the normalized view of a business the query builder works from.
type BusinessContext struct {
	BusinessName string
	Address      string
	City         string
	State        string
	Website      string
	Industry     Industry
}

// NewBusinessContext builds a BusinessContext, classifying the industry from the name.
func NewBusinessContext(name, city, state, address, website string) BusinessContext {
	return BusinessContext{
		BusinessName: name,
		City:         city,
		State:        state,
		Address:      address,
		Website:      website,
		Industry:     DetectIndustry(name),
	}
}

// Location returns "City, State" or just the state when no city is known.
func (b BusinessContext) Location() string {
	if b.City == "" {
		return b.State
	}
	return b.City + ", " + b.State
}

// SearchResult is a single organic web search hit. Link is the dedup key.
type SearchResult struct {
	Title          string                 `json:"title"`
	Snippet        string                 `json:"snippet"`
	Link           string                 `json:"link"`
	KnowledgeGraph map[string]interface{} `json:"knowledgeGraph,omitempty"`
}

// Candidate is an extracted decision-maker claim. Confidence is 0-100.
type Candidate struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"` // internal only, never surfaced to callers
	Source     string `json:"source,omitempty"`
}

// Email candidate types as classified by the extraction model.
const (
	EmailTypePersonal = "personal"
	EmailTypeBusiness = "business"
)

// EmailCandidate is a discovered contact email. Confidence is 0-100.
type EmailCandidate struct {
	Email      string `json:"email"`
	Confidence int    `json:"confidence"`
	Type       string `json:"type"`
	Source     string `json:"source,omitempty"`
}

// Result is the terminal output of FindDecisionMaker.
type Result struct {
	Name       string          `json:"name"`
	Title      string          `json:"title,omitempty"`
	Confidence int             `json:"confidence"`
	Source     string          `json:"source,omitempty"`
	Email      *EmailCandidate `json:"emailResult,omitempty"`
}

// clampConfidence bounds a confidence score to [0,100].
func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
