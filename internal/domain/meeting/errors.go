package meeting

import (
	"errors"
	"fmt"
)

// ValidationError reports a tool argument that failed a local constraint.
// It is always produced before any request reaches the upstream API.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

// NotFoundError reports that upstream affirmatively has no such resource.
type NotFoundError struct {
	Resource    string
	RecordingID RecordingID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s available for recording %d", e.Resource, e.RecordingID)
}

// UpstreamErrorKind distinguishes the ways a call to the provider can fail.
type UpstreamErrorKind string

const (
	// KindTransport means the request never produced an HTTP response.
	KindTransport UpstreamErrorKind = "transport"
	// KindStatus means upstream answered with a non-2xx status.
	KindStatus UpstreamErrorKind = "status"
	// KindDecode means the response body was not the expected JSON.
	KindDecode UpstreamErrorKind = "decode"
)

// UpstreamError is a transport-level or non-2xx failure from the provider.
// StatusCode is zero when no response was received.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is, or wraps, an *UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// AsUpstream returns the *UpstreamError in err's chain, if any.
func AsUpstream(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
