package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrMissingQuestion is returned when a document has no question span
	ErrMissingQuestion = errors.New("missing question")

	// ErrNoCorrectAnswers is returned when precision is requested for a document without gold-correct answers
	ErrNoCorrectAnswers = errors.New("no correct answers")

	// ErrInvalidSpan is returned when a span falls outside its document text
	ErrInvalidSpan = errors.New("invalid span")

	// ErrDocumentNotFound is returned when a stored document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// MissingQuestionError represents a document without a question, with context
type MissingQuestionError struct {
	DocumentID string
}

func (e *MissingQuestionError) Error() string {
	return fmt.Sprintf("document '%s' has no question", e.DocumentID)
}

func (e *MissingQuestionError) Is(target error) bool {
	return target == ErrMissingQuestion
}

// NewMissingQuestionError creates a new MissingQuestionError
func NewMissingQuestionError(documentID string) *MissingQuestionError {
	return &MissingQuestionError{DocumentID: documentID}
}

// NoCorrectAnswersError is returned when precision at R is undefined because R is zero
type NoCorrectAnswersError struct {
	DocumentID string
}

func (e *NoCorrectAnswersError) Error() string {
	return fmt.Sprintf("document '%s' has no correct answers, precision is undefined", e.DocumentID)
}

func (e *NoCorrectAnswersError) Is(target error) bool {
	return target == ErrNoCorrectAnswers
}

// NewNoCorrectAnswersError creates a new NoCorrectAnswersError
func NewNoCorrectAnswersError(documentID string) *NoCorrectAnswersError {
	return &NoCorrectAnswersError{DocumentID: documentID}
}

// InvalidSpanError represents a span that does not fit its document buffer
type InvalidSpanError struct {
	DocumentID string
	Kind       string // "question", "answer" or "mention"
	Begin      int
	End        int
	TextLength int
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("%s span [%d, %d) is outside document '%s' of length %d",
		e.Kind, e.Begin, e.End, e.DocumentID, e.TextLength)
}

func (e *InvalidSpanError) Is(target error) bool {
	return target == ErrInvalidSpan
}

// NewInvalidSpanError creates a new InvalidSpanError
func NewInvalidSpanError(documentID, kind string, begin, end, textLength int) *InvalidSpanError {
	return &InvalidSpanError{DocumentID: documentID, Kind: kind, Begin: begin, End: end, TextLength: textLength}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocumentID: documentID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
