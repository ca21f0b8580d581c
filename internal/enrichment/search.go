// internal/enrichment/search.go
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonhttp "leadscout-workers/internal/common/http"
	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/common/metrics"
)

var (
	ErrSearchTimeout = errors.New("WEB_SEARCH_TIMEOUT")
	ErrSearchFailed  = errors.New("WEB_SEARCH_FAILED")
)

// SearchProvider issues a single web query and returns organic results.
// Implementations must keep any knowledge graph payload attached to the
// results so the aggregator can pick it up.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type SearchConfig struct {
	BaseURL    string
	APIKey     string
	MaxResults int
	Timeout    time.Duration
}

// SearchClient calls a Serper-compatible search API over HTTP POST.
type SearchClient struct {
	config *SearchConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewSearchClient(config *SearchConfig, log logger.Logger) *SearchClient {
	return &SearchClient{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "search-client",
		}),
	}
}

func (c *SearchClient) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = c.config.MaxResults
	}

	resp, err := c.client.PostJSON(ctx, c.config.BaseURL,
		map[string]string{"X-API-KEY": c.config.APIKey},
		map[string]interface{}{
			"q":   query,
			"num": limit,
		})
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrSearchTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: search API returned %d", ErrSearchFailed, resp.StatusCode)
	}

	var apiResponse struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
		KnowledgeGraph map[string]interface{} `json:"knowledgeGraph"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	results := make([]SearchResult, 0, len(apiResponse.Organic))
	for _, item := range apiResponse.Organic {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	// The knowledge graph arrives once per response. Ride it on the first
	// result so downstream consumers see it in stream order.
	if len(results) > 0 && len(apiResponse.KnowledgeGraph) > 0 {
		results[0].KnowledgeGraph = apiResponse.KnowledgeGraph
	}

	metrics.SearchQueries.WithLabelValues("ok").Inc()
	c.logger.Debug("search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(results),
	})

	return results, nil
}
