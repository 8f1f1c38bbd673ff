package services

import "errors"

// Service-level sentinel errors, mapped to API errors by the transport layer.
var (
	// ErrDatasetNotLoaded means no table has been prepared yet.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	// ErrNoFetcher means a refresh was requested but no download source is
	// configured.
	ErrNoFetcher = errors.New("no dataset fetcher configured")
)
