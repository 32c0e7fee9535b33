package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnreachable is returned when the request could not be completed at
	// the transport level (refused connection, DNS failure, timeout).
	ErrUnreachable = errors.New("analysis service unreachable")
	// ErrBadStatus is matched by any *StatusError.
	ErrBadStatus = errors.New("analysis service returned non-success status")
	// ErrMalformedResponse is returned when a success response body does not
	// decode into a ReviewResult.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	// Body is the start of the response body, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis service returned HTTP %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("analysis service returned HTTP %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// Is makes errors.Is(err, ErrBadStatus) true for any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrBadStatus
}
