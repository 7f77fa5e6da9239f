// Package provider defines the normalized contract implemented by every LLM
// backend and the error taxonomy surfaced to callers.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client is the normalized request/response contract over heterogeneous LLM
// HTTP APIs. Generate returns the raw response text; decoding it into a plan
// is the caller's concern.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	TestConnection(ctx context.Context) error
}

// Category pre-classifies a failure into one user-facing bucket.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMissingKey
	CategoryInvalidKey
	CategoryQuota
	CategoryUnavailable
	CategoryBadEndpoint
	CategoryNetwork
	CategoryDecode
	CategoryIncompleteConfig
)

func (c Category) String() string {
	switch c {
	case CategoryMissingKey:
		return "missing credential"
	case CategoryInvalidKey:
		return "invalid credential"
	case CategoryQuota:
		return "quota exhausted"
	case CategoryUnavailable:
		return "service unavailable"
	case CategoryBadEndpoint:
		return "malformed endpoint"
	case CategoryNetwork:
		return "network failure"
	case CategoryDecode:
		return "response decode failure"
	case CategoryIncompleteConfig:
		return "incomplete configuration"
	default:
		return "unknown"
	}
}

// Error carries a pre-classified, human-readable provider failure. The
// message is final: callers display it, they do not re-classify.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NewError(cat Category, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...)}
}

func WrapError(cat Category, err error, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...), Err: err}
}

// CategoryOf extracts the category from err, or CategoryUnknown.
func CategoryOf(err error) Category {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Category
	}
	return CategoryUnknown
}

// Retryable reports whether a failure is worth another attempt: transient
// unavailability, or a decode failure that often indicates mid-stream
// truncation. Everything else fails immediately.
func Retryable(err error) bool {
	switch CategoryOf(err) {
	case CategoryUnavailable, CategoryDecode:
		return true
	default:
		return false
	}
}

// ClassifyStatus maps a non-2xx provider response onto the taxonomy. The
// body is sniffed because several providers report auth and quota problems
// under generic status codes.
func ClassifyStatus(label string, status int, endpoint string, body []byte) *Error {
	lower := strings.ToLower(string(body))
	switch {
	case status == 400 && (strings.Contains(lower, "api key not valid") ||
		strings.Contains(lower, "invalid api key") ||
		strings.Contains(lower, "api_key_invalid")):
		return NewError(CategoryInvalidKey, "%s API key is not valid; check that it was pasted correctly without spaces", label)
	case status == 401 || status == 403:
		return NewError(CategoryInvalidKey, "%s rejected the API key (HTTP %d); check the key and that API access is enabled", label, status)
	case status == 404:
		return NewError(CategoryBadEndpoint, "%s endpoint not found (HTTP 404); check the base URL (full address tried: %s)", label, endpoint)
	case status == 429 || strings.Contains(lower, "quota") ||
		strings.Contains(lower, "billing") ||
		strings.Contains(lower, "resource_exhausted"):
		return NewError(CategoryQuota, "%s quota or billing limit reached; check your platform usage and billing", label)
	case status == 503 || strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "overloaded"):
		return NewError(CategoryUnavailable, "%s is temporarily overloaded (HTTP %d); retrying may help", label, status)
	default:
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return NewError(CategoryUnknown, "%s request failed with HTTP %d: %s", label, status, snippet)
	}
}

// ClassifyTransport maps a failed connection attempt (DNS, refused, timeout)
// onto the network category with diagnostic guidance.
func ClassifyTransport(label string, endpoint string, err error) *Error {
	return WrapError(CategoryNetwork, err,
		"could not reach %s: check the network connection, the base URL (%s), and any proxy or firewall in between", label, endpoint)
}
