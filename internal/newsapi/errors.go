package newsapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки поискового API. Сообщения показываются пользователю как TopicWithNews.Error.
var (
	ErrRateLimited   = errors.New("rate limit exceeded, please try again later")
	ErrInvalidKey    = errors.New("invalid API key, please check your configuration")
	ErrInvalidParams = errors.New("invalid parameters, please check your search criteria")
	ErrUpstream      = errors.New("failed to fetch news, please try again")
	ErrTimeout       = errors.New("news search timed out")
)

// StatusError — ответ API с кодом вне 2xx.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", e.kind, e.Status)
	}

	return fmt.Sprintf("%s (status %d: %s)", e.kind, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

// statusError классифицирует HTTP-статус ответа.
func statusError(status int, message string) *StatusError {
	var kind error
	switch status {
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	case http.StatusUnauthorized:
		kind = ErrInvalidKey
	case http.StatusUnprocessableEntity:
		kind = ErrInvalidParams
	default:
		kind = ErrUpstream
	}

	return &StatusError{Status: status, Message: message, kind: kind}
}

// Message возвращает короткий текст ошибки для показа пользователю.
func Message(err error) string {
	for _, known := range []error{ErrRateLimited, ErrInvalidKey, ErrInvalidParams, ErrTimeout, ErrUpstream} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	if err == nil {
		return ""
	}

	return ErrUpstream.Error()
}
