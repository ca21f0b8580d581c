// internal/enrichment/prompt.go
package enrichment

import (
	"fmt"
	"strings"
)

// formatEvidence renders an evidence bundle as the numbered block the
// extraction prompts consume. The knowledge graph panel, when present,
// leads because it is the most authoritative signal.
func formatEvidence(bundle *EvidenceBundle) string {
	var parts []string

	if kg := bundle.KnowledgeGraph(); len(kg) > 0 {
		var kgLines []string
		kgLines = append(kgLines, "KNOWLEDGE GRAPH:")
		for _, key := range []string{"title", "type", "description", "founder", "ceo", "owner", "president"} {
			if v := kgString(kg, key); v != "" {
				kgLines = append(kgLines, fmt.Sprintf("  %s: %s", strings.ToUpper(key), v))
			}
		}
		if len(kgLines) > 1 {
			parts = append(parts, strings.Join(kgLines, "\n"))
		}
	}

	for i, r := range bundle.Results() {
		parts = append(parts, fmt.Sprintf("RESULT %d:\nTITLE: %s\nSNIPPET: %s\nURL: %s",
			i+1, r.Title, r.Snippet, r.Link))
	}

	return strings.Join(parts, "\n\n")
}

func kgString(kg map[string]interface{}, key string) string {
	if v, ok := kg[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// decisionMakerPrompt builds the extraction instruction for identifying the
// person who runs a business. The scoring bands tell the model how to grade
// the strength of the evidence it cites.
func decisionMakerPrompt(bctx BusinessContext, evidence string) string {
	titles := TitlesFor(bctx.Industry)

	return fmt.Sprintf(`You are a business research analyst. Identify the decision maker for the business below using ONLY the provided search evidence.

BUSINESS: %s
LOCATION: %s
INDUSTRY: %s
TITLES OF INTEREST: %s

SEARCH EVIDENCE:
%s

SCORING GUIDE:
- 95-100: the person is named as owner/founder in multiple independent sources or a knowledge graph entry
- 85-94: one authoritative source (official site, LinkedIn, news article) names them with a leadership title
- 70-84: a single credible mention ties the person to the business with a leadership role
- 50-69: the association is plausible but indirect or the title is ambiguous
- below 50: do not report the person at all

RULES:
- The name must be a real person's full name with at least a first and last name. Never return a single word, a business name, or a placeholder.
- Only report a person the evidence actually connects to THIS business at THIS location.
- If no qualifying person appears in the evidence, return null for the name.

Respond with ONLY a JSON object, no other text:
{"name": "<full name or null>", "title": "<their title or null>", "confidence": <0-100>, "reasoning": "<one sentence citing the evidence>"}`,
		bctx.BusinessName, bctx.Location(), bctx.Industry, strings.Join(titles, ", "), evidence)
}

// emailPrompt builds the contact-email extraction instruction. Acceptance is
// deliberately lenient. A business mailbox is still a usable contact point,
// so null is reserved for evidence with no email at all.
func emailPrompt(person string, bctx BusinessContext, evidence string) string {
	return fmt.Sprintf(`You are a contact research assistant. Find the best email address for reaching %s at %s (%s) using ONLY the provided search evidence.

SEARCH EVIDENCE:
%s

RULES:
- Prefer a personal address for %s, but a general business address (info@, contact@, office@) is acceptable and must be returned when it is all the evidence contains.
- Only return null when no email address of any kind appears in the evidence.
- Type is "personal" when the address clearly belongs to the person, otherwise "business".

Respond with ONLY a JSON object, no other text:
{"email": "<address or null>", "confidence": <0-100>, "type": "personal" or "business", "source": "<url the email came from, or null>"}`,
		person, bctx.BusinessName, bctx.Location(), evidence, person)
}
