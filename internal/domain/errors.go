package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or whitespace-only search query.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrCatalogUnavailable signals a catalog store failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrAssistantUnavailable signals an AI assistant failure or timeout.
	// It never crosses the transport: callers degrade to their fallback.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
