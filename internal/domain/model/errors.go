package model

import (
	"fmt"
	"strings"
)

// FieldIssue names one offending field in a rejected payload.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects malformed client input. It always enumerates the
// offending fields; callers must never collapse it into a generic message.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid payload"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", issue.Field, issue.Message)
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

// add appends an issue and returns the error for chaining.
func (e *ValidationError) add(field, message string) *ValidationError {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
	return e
}

// orNil returns nil when no issues were collected.
func (e *ValidationError) orNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
