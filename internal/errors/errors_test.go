package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMissingQuestionError(t *testing.T) {
	err := NewMissingQuestionError("doc-1")

	expectedMsg := "document 'doc-1' has no question"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrMissingQuestion) {
		t.Error("Expected error to match ErrMissingQuestion sentinel")
	}

	if errors.Is(err, ErrNoCorrectAnswers) {
		t.Error("Error should not match ErrNoCorrectAnswers")
	}
}

func TestNoCorrectAnswersError(t *testing.T) {
	err := NewNoCorrectAnswersError("doc-2")

	expectedMsg := "document 'doc-2' has no correct answers, precision is undefined"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrNoCorrectAnswers) {
		t.Error("Expected error to match ErrNoCorrectAnswers sentinel")
	}
}

func TestInvalidSpanError(t *testing.T) {
	err := NewInvalidSpanError("doc-3", "answer", 10, 40, 20)

	expectedMsg := "answer span [10, 40) is outside document 'doc-3' of length 20"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidSpan) {
		t.Error("Expected error to match ErrInvalidSpan sentinel")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	err := NewDocumentNotFoundError("doc123")

	expectedMsg := "document with ID 'doc123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDocumentNotFound) {
		t.Error("Expected error to match ErrDocumentNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "max_n",
			message:     "must be between 1 and 3",
			expectedMsg: "validation error for field 'max_n': must be between 1 and 3",
		},
		{
			name:        "without field",
			field:       "",
			message:     "general validation error",
			expectedMsg: "validation error: general validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expectedMsg {
				t.Errorf("Expected error message '%s', got '%s'", tt.expectedMsg, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("Expected error to match ErrInvalidInput sentinel")
			}
		})
	}
}

func TestWrappedErrorsKeepSentinel(t *testing.T) {
	wrapped := fmt.Errorf("process document: %w", NewMissingQuestionError("doc-4"))

	if !errors.Is(wrapped, ErrMissingQuestion) {
		t.Error("Expected wrapped error to match ErrMissingQuestion sentinel")
	}

	var mq *MissingQuestionError
	if !errors.As(wrapped, &mq) {
		t.Fatal("Expected errors.As to find MissingQuestionError")
	}
	if mq.DocumentID != "doc-4" {
		t.Errorf("Expected document ID 'doc-4', got '%s'", mq.DocumentID)
	}
}
