// internal/leadstore/store.go
package leadstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leadscout-workers/internal/common/logger"
	"leadscout-workers/internal/enrichment"
)

var (
	ErrLeadPersistFailed = errors.New("LEAD_PERSIST_FAILED")
	ErrDuplicateLead     = errors.New("DUPLICATE_ENRICHMENT")
)

// Record is a persisted enrichment outcome. Negative outcomes are stored
// too so a business is not re-enriched just because nobody was found.
type Record struct {
	ID           string
	BusinessName string
	City         string
	State        string
	Found        bool
	Name         string
	Title        string
	Confidence   int
	Source       string
	Email        string
	EmailType    string
	CreatedAt    string
}

// Store persists enrichment results to PostgreSQL.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db: db,
		logger: log.With(map[string]interface{}{
			"component": "leadstore",
		}),
	}
}

// SaveResult writes one enrichment outcome. A nil result records a negative
// outcome for the business. Returns the stored record for indexing.
func (s *Store) SaveResult(ctx context.Context, req enrichment.Request, result *enrichment.Result) (*Record, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM lead_enrichments
			WHERE business_name = $1 AND city = $2 AND state = $3
		)`, req.BusinessName, req.City, req.State).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrLeadPersistFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: enrichment already recorded for %s in %s, %s",
			ErrDuplicateLead, req.BusinessName, req.City, req.State)
	}

	record := &Record{
		ID:           uuid.New().String(),
		BusinessName: req.BusinessName,
		City:         req.City,
		State:        req.State,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if result != nil {
		record.Found = true
		record.Name = result.Name
		record.Title = result.Title
		record.Confidence = result.Confidence
		record.Source = result.Source
		if result.Email != nil {
			record.Email = result.Email.Email
			record.EmailType = result.Email.Type
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal result: %v", ErrLeadPersistFailed, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lead_enrichments (
			id, business_name, city, state, found,
			decision_maker_name, decision_maker_title, confidence, source,
			email, email_type, result_data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		record.ID,
		record.BusinessName,
		record.City,
		record.State,
		record.Found,
		record.Name,
		record.Title,
		record.Confidence,
		record.Source,
		record.Email,
		record.EmailType,
		resultJSON,
		record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrLeadPersistFailed, err)
	}

	s.logger.Info("enrichment result persisted", map[string]interface{}{
		"leadId":   record.ID,
		"business": record.BusinessName,
		"found":    record.Found,
	})

	return record, nil
}
