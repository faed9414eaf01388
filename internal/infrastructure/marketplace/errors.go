package marketplace

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer of the marketplace API.
// Message is the remote message as sent.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the marketplace
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the marketplace
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// AsAPIError unwraps err into an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type errorBody struct {
	Message string                     `json:"message"`
	Error   json.RawMessage            `json:"error"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// parseAPIError builds an APIError from an error response body.
// Field errors may be a string or a list of strings per field; the first one is kept.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = http.StatusText(statusCode)
		return apiErr
	}

	apiErr.Message = parsed.Message
	if apiErr.Message == "" && len(parsed.Error) > 0 {
		var s string
		if json.Unmarshal(parsed.Error, &s) == nil {
			apiErr.Message = s
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	if len(parsed.Errors) > 0 {
		apiErr.Fields = make(map[string]string, len(parsed.Errors))
		for field, raw := range parsed.Errors {
			var single string
			if json.Unmarshal(raw, &single) == nil {
				apiErr.Fields[field] = single
				continue
			}
			var list []string
			if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
				apiErr.Fields[field] = list[0]
			}
		}
	}

	return apiErr
}
