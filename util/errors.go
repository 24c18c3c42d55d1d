// Package util provides hashing and filesystem helpers for cachebust.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Algorithm registry errors
	ErrInvalidAlgorithm   = errors.New("invalid algorithm definition")
	ErrDuplicateAlgorithm = errors.New("algorithm already registered")
)
