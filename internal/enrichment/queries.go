// internal/enrichment/queries.go
package enrichment

import (
	"fmt"
	"strings"
)

// maxSearchQueries bounds the primary query plan so a single enrichment
// never burns more than a fixed number of search calls.
const maxSearchQueries = 8

// BuildSearchQueries produces the ordered, deterministic set of web queries
// used to find a business's decision maker. Most specific variants come
// first so the evidence cap favors them.
func BuildSearchQueries(bctx BusinessContext) []string {
	name := strings.TrimSpace(bctx.BusinessName)
	location := bctx.Location()
	titles := TitlesFor(bctx.Industry)

	queries := []string{
		fmt.Sprintf("%s %s owner name", name, location),
		fmt.Sprintf("%q %s owner", name, location),
	}

	if len(titles) >= 3 {
		queries = append(queries, fmt.Sprintf("%s %s %q OR %q OR %q",
			name, location, titles[0], titles[1], titles[2]))
	}

	queries = append(queries,
		fmt.Sprintf("%s %s contact management team", name, location),
		fmt.Sprintf("%s %s LinkedIn owner CEO", name, bctx.State),
		fmt.Sprintf("site:linkedin.com/in %q %s", name, bctx.State),
	)

	if domain := domainFromWebsite(bctx.Website); domain != "" {
		queries = append(queries,
			fmt.Sprintf("site:%s owner OR founder OR \"our team\"", domain))
	}

	queries = append(queries,
		fmt.Sprintf("%q \"owned by\" OR \"founded by\" %s", name, bctx.State))

	if len(queries) > maxSearchQueries {
		queries = queries[:maxSearchQueries]
	}
	return queries
}

// BuildEmailSearchQueries produces the query plan for locating a contact
// email for a known person at a business. Website-scoped queries are only
// emitted when a usable domain exists.
func BuildEmailSearchQueries(person, business, location, website string) []string {
	queries := []string{
		fmt.Sprintf("%q %q email contact", person, business),
		fmt.Sprintf("site:linkedin.com/in %q %q", person, business),
	}

	if domain := domainFromWebsite(website); domain != "" {
		queries = append(queries,
			fmt.Sprintf("site:%s %q email", domain, person),
			fmt.Sprintf("site:%s contact", domain),
			fmt.Sprintf("site:%s \"email\" OR \"contact us\"", domain),
		)
	}

	queries = append(queries,
		fmt.Sprintf("%q %s email address", business, location),
		fmt.Sprintf("%q %s \"contact us\"", business, location),
		fmt.Sprintf("%q %s email", person, location),
	)
	return queries
}

// domainFromWebsite extracts a bare domain from a website value, tolerating
// missing schemes, paths, and www prefixes. Returns "" when nothing usable
// remains.
func domainFromWebsite(website string) string {
	domain := strings.TrimSpace(strings.ToLower(website))
	if domain == "" {
		return ""
	}
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}
	if !strings.Contains(domain, ".") {
		return ""
	}
	return domain
}
