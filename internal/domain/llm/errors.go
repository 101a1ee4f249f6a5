package llm

import "fmt"

// UpstreamErrorKind distinguishes the ways a completion call can fail.
type UpstreamErrorKind string

const (
	// UpstreamUnreachable means the endpoint could not be reached at all.
	UpstreamUnreachable UpstreamErrorKind = "unreachable"
	// UpstreamTimeout means the request exceeded its deadline.
	UpstreamTimeout UpstreamErrorKind = "timeout"
	// UpstreamBadStatus means the endpoint answered with a non-success status.
	UpstreamBadStatus UpstreamErrorKind = "bad_status"
	// UpstreamMalformedBody means the response body was not the expected shape.
	UpstreamMalformedBody UpstreamErrorKind = "malformed_body"
)

// UpstreamError is the typed failure returned by a Provider.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Kind == UpstreamBadStatus:
		return fmt.Sprintf("completion endpoint returned status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("completion endpoint %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("completion endpoint %s", e.Kind)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
