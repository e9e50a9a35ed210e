package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeSentence trims surrounding whitespace and folds CRLF line breaks
func NormalizeSentence(sentence string) string {
	return strings.TrimSpace(strings.ReplaceAll(sentence, "\r\n", "\n"))
}

// ValidateSentence checks that a sentence is well-formed text and not blank.
// Length and content are left to the backend.
func ValidateSentence(sentence string) error {
	if !utf8.ValidString(sentence) {
		return ValidationError{Field: "sentence", Message: "sentence contains invalid characters"}
	}
	if NormalizeSentence(sentence) == "" {
		return ValidationError{Field: "sentence", Message: "sentence is required"}
	}
	return nil
}
