package domain

import "errors"

var (
	// ErrUpstream covers transport failures, non-OK statuses and malformed payloads.
	ErrUpstream       = errors.New("places: upstream unavailable")
	ErrSearchInFlight = errors.New("search already in progress")
)
