package domain

import (
	"fmt"
	"strings"
)

// ValidationError collects every rule the product configuration violates,
// so the user sees all problems in one pass.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid product configuration: " + strings.Join(e.Violations, "; ")
}

// AuthError indicates a missing or rejected API key.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "invalid API key, please check your credentials"
	}
	return e.Message
}

// RateLimitError indicates server-side throttling (HTTP 429).
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded, please wait before making another request"
	}
	return e.Message
}

// APIError is any other non-success response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API request failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "API request failed: " + e.Message
}

// NetworkError wraps a transport-level failure before any response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// GenerationFailedError carries the remote job's failure reason verbatim.
type GenerationFailedError struct {
	OperationID string
	Reason      string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation job %s failed: %s", e.OperationID, e.Reason)
}

// DownloadError indicates a failure while streaming the result file to disk.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download video from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
