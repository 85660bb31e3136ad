// Package store persists pastes for the local emulator.
package store

import (
	"errors"
	"strconv"
	"strings"
)

const keyPrefix = "pasters_"

// ErrNotFound is returned when a paste doesn't exist or has expired.
var ErrNotFound = errors.New("paste not found")

// Store defines the interface for paste storage operations.
type Store interface {
	// Get retrieves a paste by ID. Returns ErrNotFound if it doesn't exist.
	Get(id string) (string, error)
	// Create attempts to store a paste with the given ID.
	// Returns true if created, false if ID already exists (collision).
	Create(id string, body []byte) (bool, error)
}

// ParseRedisURI parses a Redis URI in the form "host:port" and returns host and port separately.
// This is needed because the rate limiter package takes host and port as separate config fields.
func ParseRedisURI(uri string) (host string, port int) {
	host = "localhost"
	port = 6379

	if uri == "" {
		return
	}

	h, p, found := strings.Cut(uri, ":")
	if h != "" {
		host = h
	}
	if found {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	return
}
