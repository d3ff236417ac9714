// Package common defines shared constants and sentinel errors used across
// the client layers of WealthWise. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// ErrorNotFound matches a backend 404 and a missing local record.
	ErrorNotFound = errors.New("not found")

	// ErrorIncorrectMetadata is returned for unparsable holding metadata.
	ErrorIncorrectMetadata = errors.New("incorrect metadata")
)
