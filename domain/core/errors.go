package core

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	// Seeding errors
	ErrInvalidSeed   = errors.New("seed must be a non-negative integer")
	ErrBackendAbsent = errors.New("backend not present")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrInsufficientRuns = errors.New("at least two runs are required to demonstrate reproducibility")

	// Manifest errors
	ErrChecksumMismatch = errors.New("manifest checksum mismatch")
)

// Error checking helpers
func IsInvalidSeed(err error) bool {
	return errors.Is(err, ErrInvalidSeed)
}

func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}
