package cli

import (
	"errors"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/history"
)

// describe turns an error into a line for the user. Backend messages are
// shown verbatim.
func describe(err error) string {
	var appErr *client.ApplicationError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "backend unreachable, try again later"
	case errors.As(err, &appErr) && errors.Is(err, client.ErrUnauthorized):
		return appErr.Error() + " (log in again)"
	case errors.Is(err, history.ErrInsufficientData):
		return "not enough history yet"
	}
	return err.Error()
}
