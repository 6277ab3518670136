package types

import "errors"

var (
	// ErrUnknownProvider is returned when configuration names a provider that does not exist
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingAPIKey is returned when a provider is built without credentials
	ErrMissingAPIKey = errors.New("missing api key")

	// ErrEmptyResponse is returned when the provider returns an empty response
	ErrEmptyResponse = errors.New("empty response from provider")
)
