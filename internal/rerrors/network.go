package rerrors

import "fmt"

// NetworkError wraps a failed HTTP request: a connection that could not be
// established, timed out, or returned a status code the caller did not
// expect (never 404, which resolvers translate into DoesNotExist).
type NetworkError struct {
	*Error
	URL        string
	StatusCode int
}

// NewNetworkError reports a transport-level failure (DNS, TLS, timeout,
// connection refused) for the given URL.
func NewNetworkError(url string, cause error) *NetworkError {
	return &NetworkError{
		Error: &Error{
			Category: CategoryNetwork,
			Code:     CodeNetworkFailed,
			Message:  fmt.Sprintf("request to %s failed", url),
			Cause:    cause,
		},
		URL: url,
	}
}

// NewHTTPError reports an unexpected HTTP status code.
func NewHTTPError(url string, statusCode int) *NetworkError {
	return &NetworkError{
		Error: &Error{
			Category: CategoryNetwork,
			Code:     CodeHTTPError,
			Message:  fmt.Sprintf("%s returned unexpected status %d", url, statusCode),
		},
		URL:        url,
		StatusCode: statusCode,
	}
}
