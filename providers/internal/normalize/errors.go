// Package normalize provides shared provider error normalization helpers.
// Every provider funnels its HTTP and parsing failures through here so the
// dispatch layer surfaces one uniform taxonomy.
package normalize

import (
	"fmt"
	"net/http"

	"github.com/scenebrush/scenebrush/core"
)

const maxBodyInMessage = 512

// HTTPStatusError converts a non-2xx response into a classified
// ProviderError. Auth failures get actionable guidance instead of the bare
// status text; 429 carries the Retry-After hint when the backend sent one.
func HTTPStatusError(provider string, status int, body []byte, retryAfter string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &core.ProviderError{
			Provider: provider,
			Status:   status,
			Code:     "auth",
			Message:  "API key rejected. Check that the key is valid and your account has quota.",
			Err:      core.ErrAuth,
		}
	case status == http.StatusTooManyRequests:
		msg := "rate limit exceeded"
		if retryAfter != "" {
			msg = fmt.Sprintf("rate limit exceeded, retry after %s seconds", retryAfter)
		}
		return &core.ProviderError{
			Provider:   provider,
			Status:     status,
			Code:       "rate_limited",
			Message:    msg,
			RetryAfter: retryAfter,
			Err:        core.ErrRateLimited,
		}
	default:
		return &core.ProviderError{
			Provider: provider,
			Status:   status,
			Code:     "http_error",
			Message:  fmt.Sprintf("request failed with status %d: %s", status, Truncate(body)),
			Err:      core.ErrTransport,
		}
	}
}

// NetworkError wraps transport failures (DNS, timeout, connection reset).
func NetworkError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "network_error",
		Message:  err.Error(),
		Err:      core.ErrTransport,
	}
}

// DecodeError wraps a 2xx body that could not be parsed at all.
func DecodeError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "decode_error",
		Message:  err.Error(),
		Err:      core.ErrMalformedResponse,
	}
}

// MalformedError marks a parseable response with no recognizable image
// after every parse strategy was exhausted.
func MalformedError(provider, detail string) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     "no_image_in_response",
		Message:  detail,
		Err:      core.ErrMalformedResponse,
	}
}

// NoImageError marks a well-formed response where the model returned only
// text instead of an image.
func NoImageError(provider, modelText string) error {
	msg := "the model declined to produce an image"
	if modelText != "" {
		msg = fmt.Sprintf("the model returned text instead of an image: %s", truncateString(modelText))
	}
	return &core.ProviderError{
		Provider: provider,
		Code:     "no_image",
		Message:  msg,
		Err:      core.ErrNoImage,
	}
}

// Truncate shortens a response body for error messages.
func Truncate(body []byte) string {
	return truncateString(string(body))
}

func truncateString(s string) string {
	if len(s) > maxBodyInMessage {
		return s[:maxBodyInMessage] + "..."
	}
	return s
}
