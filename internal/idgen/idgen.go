// Package idgen wraps the UUID generator so that handle names can be
// stubbed in tests. Callers must treat generated names as opaque.
package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Name returns a unique object name carrying the supplied extension,
// e.g. Name(".srt") => "0b6f...e1.srt".
func Name(ext string) string {
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return New() + ext
}
