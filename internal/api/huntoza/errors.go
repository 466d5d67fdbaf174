package huntoza

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSessionExpired marks the fatal auth path: the refresh-token exchange
// failed and the stored credentials were cleared. Callers must send the user
// back through login instead of retrying.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// APIError is a server-rejected request. Error() returns the structured
// server message verbatim so it can be surfaced to the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorResponse struct {
	Msg string `json:"msg"`
}

func apiError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Msg != "" {
		return &APIError{StatusCode: status, Message: resp.Msg}
	}
	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d", status),
	}
}
