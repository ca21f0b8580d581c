// internal/leadstore/index.go
package leadstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leadscout-workers/internal/common/database"
	"leadscout-workers/internal/common/logger"
)

var ErrLeadIndexFailed = errors.New("LEAD_INDEX_FAILED")

// Indexer mirrors persisted enrichment records into Elasticsearch so the
// sales team can query leads by name, title, and confidence.
type Indexer struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{
		es:    es,
		index: index,
		logger: log.With(map[string]interface{}{
			"component": "lead-indexer",
		}),
	}
}

// IndexRecord writes one record to the lead index. Indexing is a mirror of
// the PostgreSQL row, so callers may treat failures as non-fatal.
func (i *Indexer) IndexRecord(ctx context.Context, record *Record) error {
	doc, err := json.Marshal(map[string]interface{}{
		"businessName": record.BusinessName,
		"city":         record.City,
		"state":        record.State,
		"found":        record.Found,
		"name":         record.Name,
		"title":        record.Title,
		"confidence":   record.Confidence,
		"email":        record.Email,
		"emailType":    record.EmailType,
		"createdAt":    record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal document: %v", ErrLeadIndexFailed, err)
	}

	if err := i.es.Index(ctx, i.index, record.ID, string(doc)); err != nil {
		return fmt.Errorf("%w: %v", ErrLeadIndexFailed, err)
	}

	i.logger.Debug("lead indexed", map[string]interface{}{
		"leadId": record.ID,
		"index":  i.index,
	})
	return nil
}
