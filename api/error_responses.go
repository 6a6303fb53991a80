package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/answer-ranker/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidSpan      ErrorCode = "INVALID_SPAN"
	ErrorCodeMissingQuestion  ErrorCode = "MISSING_QUESTION"
	ErrorCodeNoCorrectAnswers ErrorCode = "NO_CORRECT_ANSWERS"
	ErrorCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeRankingFailed ErrorCode = "RANKING_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendRankingError maps a document processing error to its status and error code.
func SendRankingError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, errors.ErrMissingQuestion):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeMissingQuestion, err.Error())
	case stderrors.Is(err, errors.ErrNoCorrectAnswers):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeNoCorrectAnswers, err.Error())
	case stderrors.Is(err, errors.ErrInvalidSpan):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidSpan, err.Error())
	case stderrors.Is(err, errors.ErrDocumentNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeDocumentNotFound, err.Error())
	case stderrors.Is(err, errors.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeRankingFailed,
			"Ranking failed: "+err.Error())
	}
}
