package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/meruem/meruem-web/internal/errors"
)

// StatusError is returned for any non-2xx response from the backend.
// Code and Cause carry the backend's {code, cause} body when it sends one;
// FastAPI's {detail} is folded into Cause.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Code       string
	Cause      string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("backend %s returned %d", e.Endpoint, e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Cause != "" {
		msg += ": " + e.Cause
	}
	return msg
}

// Unwrap lets callers test for errors.ErrUnauthorized.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return errors.ErrUnauthorized
	}
	return nil
}

type errorBody struct {
	Code   string          `json:"code"`
	Cause  string          `json:"cause"`
	Detail json.RawMessage `json:"detail"`
}

func newStatusError(endpoint string, statusCode int, body []byte) *StatusError {
	se := &StatusError{Endpoint: endpoint, StatusCode: statusCode}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		se.Cause = strings.TrimSpace(string(body))
		return se
	}
	se.Code = eb.Code
	se.Cause = eb.Cause
	if se.Cause == "" && len(eb.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(eb.Detail, &detail); err == nil {
			se.Cause = detail
		} else {
			se.Cause = string(eb.Detail)
		}
	}
	return se
}
