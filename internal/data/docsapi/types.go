package docsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// envelope wraps every API response.
type envelope struct {
	ErrorCode    int             `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
	Data         json.RawMessage `json:"data"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

// APIError is a failure reported by the server, either through the HTTP
// status or a non-zero error_code in the envelope.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("api error %d: %s (status %d)", e.Code, e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("api error: %s (status %d)", e.Message, e.Status)
	case e.Code != 0:
		return fmt.Sprintf("api error %d (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("api error: status %d %s", e.Status, http.StatusText(e.Status))
}

// Unauthorized reports whether the server rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
