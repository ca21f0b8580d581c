// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError_MapsCodeAndRetries(t *testing.T) {
	stdErr := NewLeadPersistFailedError(errors.New("pq: connection refused"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "LEAD_PERSIST_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "LEAD_PERSIST_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_BusinessErrorsDoNotRetry(t *testing.T) {
	tests := []struct {
		name   string
		stdErr *StandardError
		code   string
	}{
		{"invalid input", NewInvalidLeadInputError("businessName is required"), "INVALID_LEAD_INPUT"},
		{"duplicate", NewDuplicateEnrichmentError("tony's pizza:brooklyn:ny"), "DUPLICATE_ENRICHMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.stdErr)
			assert.Equal(t, tt.code, bpmnErr.Code)
			assert.False(t, bpmnErr.Retryable)
			assert.Equal(t, 0, bpmnErr.Retries)
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeDatabaseConnectionFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeLeadIndexFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeLLMExtractionFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeEnrichmentGuardFailed))
	assert.Equal(t, 1, GetRetryCount(ErrCodeLLMTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeWebSearchTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeMalformedLLMResponse))
	assert.Equal(t, 0, GetRetryCount(ErrCodeInvalidLeadInput))
}

func TestErrorConstructors_SoftAIFailures(t *testing.T) {
	searchTimeout := NewWebSearchTimeoutError()
	assert.Equal(t, ErrCodeWebSearchTimeout, searchTimeout.Code)
	assert.False(t, IsRetryableErrorCode(searchTimeout.Code))

	searchFailed := NewWebSearchFailedError(errors.New("status 502"))
	assert.Equal(t, ErrCodeWebSearchFailed, searchFailed.Code)

	llmTimeout := NewLLMTimeoutError()
	assert.Equal(t, ErrCodeLLMTimeout, llmTimeout.Code)
	assert.True(t, IsRetryableErrorCode(llmTimeout.Code))

	malformed := NewMalformedLLMResponseError("not json")
	assert.Equal(t, ErrCodeMalformedLLMResponse, malformed.Code)
	assert.False(t, malformed.Retryable)

	extraction := NewLLMExtractionFailedError(errors.New("gateway unavailable"))
	assert.Equal(t, ErrCodeLLMExtractionFailed, extraction.Code)
	assert.True(t, extraction.Retryable)
}

func TestErrorConstructors_Persistence(t *testing.T) {
	dbErr := NewDatabaseConnectionFailedError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, ErrCodeDatabaseConnectionFailed, dbErr.Code)
	assert.True(t, dbErr.Retryable)

	idxErr := NewLeadIndexFailedError(errors.New("index_not_found_exception"))
	assert.Equal(t, ErrCodeLeadIndexFailed, idxErr.Code)
	assert.True(t, idxErr.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PERSISTENCE", GetErrorCategory(ErrCodeLeadPersistFailed))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeLLMTimeout))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeWebSearchFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidLeadInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeEnrichmentGuardFailed))
}
