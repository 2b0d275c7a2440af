package eventbrite

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no credential is available.
	ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set; add your Eventbrite private token to the environment or .env")

	// ErrNotFound matches errors for events the API does not know about.
	ErrNotFound = errors.New("event not found")
)

// HTTPError is returned for any non-2xx response that is not retried.
type HTTPError struct {
	StatusCode  int
	Method      string
	Endpoint    string
	Description string // error_description from the API body, if any
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("eventbrite API error (status %d) for %s %s", e.StatusCode, e.Method, e.Endpoint)
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match a 404 response.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// newHTTPError builds an HTTPError, picking the description out of the
// standard Eventbrite error body when present.
func newHTTPError(method, endpoint string, status int, body []byte) *HTTPError {
	var apiErr struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	herr := &HTTPError{StatusCode: status, Method: method, Endpoint: endpoint}
	if json.Unmarshal(body, &apiErr) == nil {
		herr.Description = apiErr.Description
		if herr.Description == "" {
			herr.Description = apiErr.Error
		}
	}
	return herr
}
