// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Kind classifies a failed Gemini request.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindRateLimit
	KindNotFound
	KindInvalidRequest
	KindTimeout
	KindServer
	KindBlocked
	KindEmpty
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server_error"
	case KindBlocked:
		return "blocked"
	case KindEmpty:
		return "empty_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for empty or refused replies.
var (
	ErrNoCandidates = errors.New("no candidates in response")
	ErrBlocked      = errors.New("response blocked")
	ErrNoText       = errors.New("response contained no text")
)

// RequestError is returned for any failed Gemini call. Its message is the
// underlying error text so it can be shown to the user verbatim.
type RequestError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// wrapError converts SDK and transport errors to *RequestError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}

	out := &RequestError{Kind: KindUnknown, Message: err.Error(), Err: err}

	if code, ok := apiStatus(err); ok {
		out.StatusCode = code
		out.Kind = kindForStatus(code)
		return out
	}

	if errors.Is(err, context.DeadlineExceeded) {
		out.Kind = KindTimeout
		return out
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "credential") || strings.Contains(msg, "permission"):
		out.Kind = KindAuthentication
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
		out.Kind = KindRateLimit
	case strings.Contains(msg, "not found"):
		out.Kind = KindNotFound
	case strings.Contains(msg, "invalid"):
		out.Kind = KindInvalidRequest
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		out.Kind = KindTimeout
	case strings.Contains(msg, "unavailable") || strings.Contains(msg, "server"):
		out.Kind = KindServer
	}
	return out
}

// apiStatus extracts the HTTP status from a genai.APIError in either form.
func apiStatus(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuthentication
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusBadRequest:
		return KindInvalidRequest
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}
