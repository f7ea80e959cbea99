package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Third-Party API & LLM Specific Errors
var (
	ErrRateLimitExceeded     = errors.New("rate limit exceeded")
	ErrModelOverloaded       = errors.New("model overloaded")
	ErrInvalidAPIKey         = errors.New("invalid API key")
	ErrProviderUnavailable   = errors.New("provider unavailable")
	ErrProviderTimeout       = errors.New("provider timeout")
	ErrEmptyModelReply       = errors.New("empty model reply")
	ErrUnsupportedProvider   = errors.New("unsupported provider")
	ErrProviderNotConfigured = errors.New("provider not configured")
)

// Publishing Errors
var (
	ErrPublishNotConfigured = errors.New("publishing not configured")
	ErrPublishFailed        = errors.New("publish failed")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

func NewUnsupportedProviderError(provider string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedProvider,
		Details:    fmt.Sprintf("Unknown AI provider: %s", provider),
		Field:      "provider",
	}
}

func NewProviderNotConfiguredError(provider string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrProviderNotConfigured,
		Details:    fmt.Sprintf("No API key configured for provider %s", provider),
		Field:      "provider",
	}
}

func NewProviderTimeoutError(provider string, timeout time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrProviderTimeout,
		Details:    fmt.Sprintf("%s took longer than %v to respond", provider, timeout),
		Field:      "provider",
	}
}

func NewProviderError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrProviderUnavailable,
		Details:    fmt.Sprintf("Request to %s failed", provider),
		Cause:      cause,
		Field:      "provider",
	}
}

func NewEmptyModelReplyError(provider string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrEmptyModelReply,
		Details:    fmt.Sprintf("%s returned no choices", provider),
		Field:      "provider",
	}
}

func NewPublishNotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrPublishNotConfigured,
		Details:    "PUBLISH_BUCKET is not set",
		Field:      "publish",
	}
}

func NewPublishFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrPublishFailed,
		Details:    "Failed to upload project files",
		Cause:      cause,
		Field:      "publish",
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Required configuration %s is not set", key),
		Field:      key,
	}
}

// Error Type Checkers
func IsRateLimitExceeded(err error) bool {
	return errors.Is(err, ErrRateLimitExceeded)
}

func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

func IsUnsupportedProvider(err error) bool {
	return errors.Is(err, ErrUnsupportedProvider)
}

func IsProviderNotConfigured(err error) bool {
	return errors.Is(err, ErrProviderNotConfigured)
}

func IsPublishNotConfigured(err error) bool {
	return errors.Is(err, ErrPublishNotConfigured)
}
