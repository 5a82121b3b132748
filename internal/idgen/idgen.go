package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier as string.
var NewFunc = func() string { return uuid.New().String() }

// New returns NewFunc().
func New() string { return NewFunc() }

// Short returns the first block of a new identifier, handy for log prefixes.
func Short() string {
	id := New()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
