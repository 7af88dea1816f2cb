package domain

import "errors"

var (
	// ErrUnknownProvider is returned when the configured LLM provider name
	// is not recognized.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrUnknownStoreType is returned when the configured cost store
	// backend is not recognized.
	ErrUnknownStoreType = errors.New("unknown cost store type")

	// ErrInvalidRule is returned when a configured rule cannot be compiled.
	ErrInvalidRule = errors.New("invalid rule")
)
