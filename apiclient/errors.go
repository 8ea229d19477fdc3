package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
)

// GenericErrorMessage is used when a failed response carries no usable message
const GenericErrorMessage = "Something went wrong"

// APIError is returned for every non-2xx response. Message is always a
// human-readable string suitable for showing to the operator.
type APIError struct {
	Status  int    // HTTP status code
	Message string // Category-prefixed message, e.g. "Validation error: email is required"
	Detail  string // Server-provided message, or the status line when the body was not JSON
	Body    []byte // Raw response body
}

func (e *APIError) Error() string {
	return e.Message
}

// Is matches the category sentinels in internal/errors by status code
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == ierrors.ErrBadRequest
	case http.StatusUnauthorized:
		return target == ierrors.ErrUnauthorized
	case http.StatusForbidden:
		return target == ierrors.ErrPermissionDenied
	case http.StatusNotFound:
		return target == ierrors.ErrNotFound
	case http.StatusUnprocessableEntity:
		return target == ierrors.ErrValidation
	case http.StatusTooManyRequests:
		return target == ierrors.ErrTooManyRequests
	}
	return e.Status >= http.StatusInternalServerError && target == ierrors.ErrServer
}

// statusCategory returns the message prefix for a status, or "" when the
// status has no dedicated category
func statusCategory(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Permission denied"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusUnprocessableEntity:
		return "Validation error"
	case http.StatusTooManyRequests:
		return "Too much requests"
	case http.StatusInternalServerError:
		return "Server error"
	}
	return ""
}

// errorBody is the error payload shape used by the backend. message is a
// string for most errors and a list of strings for field validation failures.
// error is either a plain string or an object carrying its own message.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (b errorBody) text() string {
	if s := messageText(b.Message); s != "" {
		return s
	}
	if s := messageText(b.Error); s != "" {
		return s
	}
	if len(b.Error) > 0 {
		var nested struct {
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(b.Error, &nested); err == nil {
			return messageText(nested.Message)
		}
	}
	return ""
}

// messageText reads raw as a string or a list of strings
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func newAPIError(res *response) *APIError {
	apiErr := &APIError{Status: res.status, Body: res.body}

	var body errorBody
	if err := json.Unmarshal(res.body, &body); err != nil {
		apiErr.Detail = statusLine(res)
	} else {
		apiErr.Detail = body.text()
	}

	category := statusCategory(res.status)
	switch {
	case category != "" && apiErr.Detail != "":
		apiErr.Message = fmt.Sprintf("%s: %s", category, apiErr.Detail)
	case category != "":
		apiErr.Message = category
	case apiErr.Detail != "":
		apiErr.Message = apiErr.Detail
	default:
		apiErr.Message = GenericErrorMessage
	}
	return apiErr
}

func statusLine(res *response) string {
	if res.statusText != "" {
		return res.statusText
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", res.status, http.StatusText(res.status)))
}
