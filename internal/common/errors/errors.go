// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidLeadInput    ErrorCode = "INVALID_LEAD_INPUT"
	ErrCodeDuplicateEnrichment ErrorCode = "DUPLICATE_ENRICHMENT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeLeadPersistFailed        ErrorCode = "LEAD_PERSIST_FAILED"
	ErrCodeLeadIndexFailed          ErrorCode = "LEAD_INDEX_FAILED"

	ErrCodeWebSearchTimeout      ErrorCode = "WEB_SEARCH_TIMEOUT"
	ErrCodeWebSearchFailed       ErrorCode = "WEB_SEARCH_FAILED"
	ErrCodeLLMTimeout            ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMExtractionFailed   ErrorCode = "LLM_EXTRACTION_FAILED"
	ErrCodeMalformedLLMResponse  ErrorCode = "MALFORMED_LLM_RESPONSE"
	ErrCodeEnrichmentGuardFailed ErrorCode = "ENRICHMENT_GUARD_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidLeadInputError creates a non-retryable input validation error.
func NewInvalidLeadInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLeadInput,
		Message:   "Lead input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateEnrichmentError creates a non-retryable duplicate job error.
func NewDuplicateEnrichmentError(businessKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateEnrichment,
		Message:   "Enrichment already in flight for business",
		Details:   fmt.Sprintf("businessKey: %s", businessKey),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLeadPersistFailedError creates a retryable lead persistence error.
func NewLeadPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadPersistFailed,
		Message:   "Lead result persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLeadIndexFailedError creates a retryable lead index mirror error.
func NewLeadIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadIndexFailed,
		Message:   "Lead index mirror failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWebSearchTimeoutError creates a non-retryable (returns empty) web search timeout error.
func NewWebSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchTimeout,
		Message:   "Web search API timeout",
		Details:   "Search call exceeded the configured timeout",
		Retryable: false, // pipeline degrades to empty evidence, never retries
		Timestamp: time.Now().UTC(),
	}
}

// NewWebSearchFailedError creates a non-retryable web search transport error.
func NewWebSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchFailed,
		Message:   "Web search API error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "LLM completion timeout",
		Details:   "LLM call exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMExtractionFailedError creates a retryable LLM extraction error.
func NewLLMExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMExtractionFailed,
		Message:   "LLM extraction API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedLLMResponseError creates a non-retryable malformed response error.
func NewMalformedLLMResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedLLMResponse,
		Message:   "LLM returned non-conforming JSON",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnrichmentGuardFailedError creates a retryable in-flight guard error.
func NewEnrichmentGuardFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentGuardFailed,
		Message:   "In-flight enrichment guard unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidLeadInput:         "INVALID_LEAD_INPUT",
	ErrCodeDuplicateEnrichment:      "DUPLICATE_ENRICHMENT",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeLeadPersistFailed:        "LEAD_PERSIST_FAILED",
	ErrCodeLeadIndexFailed:          "LEAD_INDEX_FAILED",
	ErrCodeWebSearchTimeout:         "WEB_SEARCH_TIMEOUT",
	ErrCodeWebSearchFailed:          "WEB_SEARCH_FAILED",
	ErrCodeLLMTimeout:               "LLM_TIMEOUT",
	ErrCodeLLMExtractionFailed:      "LLM_EXTRACTION_FAILED",
	ErrCodeMalformedLLMResponse:     "MALFORMED_LLM_RESPONSE",
	ErrCodeEnrichmentGuardFailed:    "ENRICHMENT_GUARD_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeLeadPersistFailed,
		ErrCodeLeadIndexFailed,
		ErrCodeLLMExtractionFailed,
		ErrCodeEnrichmentGuardFailed:
		return 3 // Retryable technical errors

	case ErrCodeLLMTimeout:
		return 1 // As per BPMN boundary event

	default:
		return 0 // Business errors and soft failures: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	// INVALID_LEAD_INPUT also contains "LEAD", so validation checks go first.
	switch {
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "DUPLICATE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "LEAD") || strings.Contains(codeStr, "DATABASE"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "WEB_SEARCH"):
		return "AI"
	default:
		return "OTHER"
	}
}
