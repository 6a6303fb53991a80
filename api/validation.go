// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/answer-ranker/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("id", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("id", "Document ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateRankRequest validates a rank request. Either raw text or text with explicit
// spans must be given, never both.
func ValidateRankRequest(req *RankRequest) *ValidationResult {
	result := ValidateDocumentID(req.ID)

	hasRaw := req.Raw != ""
	hasText := req.Text != ""
	switch {
	case hasRaw && hasText:
		result.AddError("raw", "Provide either 'raw' or 'text', not both")
		return result
	case !hasRaw && !hasText:
		result.AddError("text", "Either 'raw' or 'text' is required")
		return result
	}

	textLen := len(req.Raw)
	if hasText {
		textLen = len(req.Text)
		if req.Question == nil {
			result.AddError("question", "Question span is required with 'text'")
		} else {
			validateSpan(result, "question", *req.Question, textLen, false)
		}
		for i, a := range req.Answers {
			validateSpan(result, fmt.Sprintf("answers[%d]", i), a.Span(), textLen, true)
		}
	} else if req.Question != nil || len(req.Answers) > 0 {
		result.AddError("raw", "Question and answer spans cannot be combined with 'raw'")
	}

	for i, m := range req.Mentions {
		validateSpan(result, fmt.Sprintf("mentions[%d]", i), m, textLen, false)
	}

	return result
}

// validateSpan checks that span lies within a text of textLen bytes. Answers may be empty,
// in which case they are skipped during scoring.
func validateSpan(result *ValidationResult, field string, span model.Span, textLen int, allowEmpty bool) {
	if allowEmpty && span.IsEmpty() {
		return
	}
	if !span.Within(textLen) {
		result.AddError(field, fmt.Sprintf("Span [%d, %d) is outside the text of length %d", span.Begin, span.End, textLen))
	}
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
