package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Third-Party API Errors
var (
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrUpstream           = errors.New("upstream request failed")
	ErrServiceUnavailable = errors.New("service unavailable")
)

func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s. Retry after %v", service, retryAfter),
	}
}

// NewUpstreamError reports a failed call to an external provider. The provider's
// response body is forwarded in Details.
func NewUpstreamError(service string, body string, cause error) *ApiErr {
	if body == "" {
		body = fmt.Sprintf("%s request failed", service)
	}
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", service, ErrUpstream),
		Details:    body,
		Cause:      cause,
	}
}

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured or unreachable", service),
		Cause:      cause,
	}
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}
