// internal/enrichment/queries_test.go
package enrichment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchQueries(t *testing.T) {
	bctx := NewBusinessContext("Tony's Pizza", "Brooklyn", "NY", "", "https://tonyspizza.com")

	queries := BuildSearchQueries(bctx)

	assert.NotEmpty(t, queries)
	assert.LessOrEqual(t, len(queries), maxSearchQueries)

	// Most specific variants lead the plan.
	assert.Equal(t, "Tony's Pizza Brooklyn, NY owner name", queries[0])
	assert.Equal(t, `"Tony's Pizza" Brooklyn, NY owner`, queries[1])

	joined := strings.Join(queries, "\n")
	assert.Contains(t, joined, "site:linkedin.com/in")
	assert.Contains(t, joined, "site:tonyspizza.com")
	assert.Contains(t, joined, `"chef owner"`) // restaurant titles applied
}

func TestBuildSearchQueries_Deterministic(t *testing.T) {
	bctx := NewBusinessContext("Acme Corp", "Austin", "TX", "", "")

	first := BuildSearchQueries(bctx)
	second := BuildSearchQueries(bctx)

	assert.Equal(t, first, second)
}

func TestBuildSearchQueries_NoWebsite(t *testing.T) {
	bctx := NewBusinessContext("Acme Corp", "Austin", "TX", "", "")

	queries := BuildSearchQueries(bctx)

	for _, q := range queries {
		assert.NotContains(t, q, "site:acme")
	}
	assert.LessOrEqual(t, len(queries), maxSearchQueries)
}

func TestBuildSearchQueries_NoCity(t *testing.T) {
	bctx := NewBusinessContext("Acme Corp", "", "TX", "", "")

	queries := BuildSearchQueries(bctx)
	assert.Equal(t, "Acme Corp TX owner name", queries[0])
}

func TestBuildEmailSearchQueries(t *testing.T) {
	queries := BuildEmailSearchQueries("Tony Russo", "Tony's Pizza", "Brooklyn, NY", "https://www.tonyspizza.com/about")

	joined := strings.Join(queries, "\n")
	assert.Contains(t, joined, `"Tony Russo" "Tony's Pizza" email contact`)
	assert.Contains(t, joined, "site:linkedin.com/in")
	assert.Contains(t, joined, `site:tonyspizza.com "Tony Russo" email`)
	assert.Contains(t, joined, `"Tony's Pizza" Brooklyn, NY email address`)
}

func TestBuildEmailSearchQueries_NoWebsite(t *testing.T) {
	queries := BuildEmailSearchQueries("Tony Russo", "Tony's Pizza", "Brooklyn, NY", "")

	for _, q := range queries {
		assert.False(t, strings.HasPrefix(q, "site:tonyspizza"),
			fmt.Sprintf("unexpected website query: %s", q))
	}
	assert.Len(t, queries, 5)
}

func TestDomainFromWebsite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.tonyspizza.com/about?x=1", "tonyspizza.com"},
		{"http://tonyspizza.com", "tonyspizza.com"},
		{"tonyspizza.com", "tonyspizza.com"},
		{"WWW.TonysPizza.COM", "tonyspizza.com"},
		{"", ""},
		{"not a domain", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domainFromWebsite(tt.in), tt.in)
	}
}
