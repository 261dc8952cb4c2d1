package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRequest wraps transport and encoding failures.
var ErrRequest = errors.New("request failed")

// StatusError reports a non-2xx response, carrying the server's decoded
// error payload when one was present.
type StatusError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Path, e.StatusCode)
}

func newStatusError(path string, status int, body []byte) *StatusError {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	return &StatusError{Path: path, StatusCode: status, Message: payload.Error}
}
