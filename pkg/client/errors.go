package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gork-labs/paykit/pkg/unions"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnprocessable = errors.New("unprocessable request")
	ErrRateLimited   = errors.New("rate limited")

	// ErrMissingID is returned before any request is sent when a resource ID is empty.
	ErrMissingID = errors.New("resource id is required")

	// ErrInvalidID is returned before any request is sent for the IDs "." and
	// "..", which would address the collection or its parent instead.
	ErrInvalidID = errors.New("invalid resource id")
)

// ValidationDetail is one entry of a validation error response.
type ValidationDetail struct {
	Loc   []any          `json:"loc"`
	Msg   string         `json:"msg"`
	Type  string         `json:"type"`
	Input any            `json:"input,omitempty"`
	Ctx   map[string]any `json:"ctx,omitempty"`
	URL   string         `json:"url,omitempty"`
}

// Path renders Loc without the leading request section, e.g. "customer.email"
// or "events[1].name".
func (d ValidationDetail) Path() string {
	var b strings.Builder
	for i, part := range d.Loc {
		switch v := part.(type) {
		case float64:
			fmt.Fprintf(&b, "[%d]", int(v))
		case int:
			fmt.Fprintf(&b, "[%d]", v)
		default:
			s := fmt.Sprint(v)
			if i == 0 && (s == "body" || s == "query" || s == "path") {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// errorDetail is a plain message for most errors and a list of field
// failures for validation errors.
type errorDetail = unions.Union2[string, []ValidationDetail]

// ErrorBody is the JSON body of an API error response.
type ErrorBody struct {
	Type   string      `json:"type"`
	Detail errorDetail `json:"detail"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Type       string
	Detail     string
	Validation []ValidationDetail
}

func (e *APIError) Error() string {
	if len(e.Validation) > 0 {
		parts := make([]string, len(e.Validation))
		for i, d := range e.Validation {
			parts[i] = fmt.Sprintf("%s: %s", d.Path(), d.Msg)
		}
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Type, strings.Join(parts, "; "))
	}
	if e.Type == "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Type, e.Detail)
}

// Unwrap maps the status code to one of the sentinel errors, so that
// errors.Is(err, ErrNotFound) works on any APIError.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// parseError builds an APIError from a response body. Bodies that are not
// in the API's error format are kept verbatim as the detail.
func parseError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(statusCode)
		}
		return apiErr
	}

	apiErr.Type = eb.Type
	switch {
	case eb.Detail.A != nil:
		apiErr.Detail = *eb.Detail.A
	case eb.Detail.B != nil:
		apiErr.Validation = *eb.Detail.B
		apiErr.Detail = "validation failed"
	default:
		apiErr.Detail = http.StatusText(statusCode)
	}
	return apiErr
}
