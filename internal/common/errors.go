// Package common defines shared constants and sentinel errors used across
// the layers of the sync engine. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
