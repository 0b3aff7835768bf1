package launchlens

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sells-group/launchlens/internal/resilience"
)

// APIError is returned when the service responds with a non-2xx status.
// Message holds the structured "error" or "detail" field of the body when
// one could be parsed.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("launchlens: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("launchlens: HTTP %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "launchlens: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Body:       string(body),
		Message:    bodyMessage(body),
	}
}

// bodyMessage extracts {"error": "..."} or {"detail": "..."} from an error
// body. Non-string detail values (validation lists) are ignored.
func bodyMessage(body []byte) string {
	var payload struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, v := range []any{payload.Error, payload.Detail} {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// IsUnauthorized reports whether err means the held credential was rejected.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// RemoteMessage returns the structured message from an APIError in err's
// chain, or "" when there is none.
func RemoteMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// retryable decides which read failures are retried: transient statuses and
// transient transport failures.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return resilience.IsTransientHTTPStatus(apiErr.StatusCode)
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return resilience.IsTransient(tErr.Err)
	}
	return false
}
