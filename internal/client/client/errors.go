package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wealthwise/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ApplicationError means the backend answered and rejected the request.
// Detail is the backend's message, kept verbatim.
type ApplicationError struct {
	Op     string
	Status int
	Detail string
}

func (e *ApplicationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// Is matches ErrUnauthorized for 401/403 and common.ErrorNotFound for 404.
func (e *ApplicationError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// TransportError means no response was obtained: timeout, refused
// connection, DNS failure and the like.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrUnavailable, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// IsTransport reports whether err carries a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
