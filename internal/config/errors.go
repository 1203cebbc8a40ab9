package config

import "errors"

// Configuration validation errors returned by Config.Validate and
// Config.ApplyFile. Callers match them with errors.Is.
var (
	// ErrNoTarget is returned when no website URL is given.
	ErrNoTarget = errors.New("no target specified: provide a company website URL")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive
	// or cannot be parsed.
	ErrInvalidTimeout = errors.New("invalid timeout: must be a positive duration")

	// ErrInvalidMaxPages is returned when the page budget is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxDepth is returned when the depth limit is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrUnknownIntent is returned when the config file names an intent
	// outside about, products, research, careers, and contact.
	ErrUnknownIntent = errors.New("unknown intent category")

	// ErrEmptyPlatform is returned when a social platform entry has no name
	// or no domains.
	ErrEmptyPlatform = errors.New("social platform needs a name and at least one domain")
)
