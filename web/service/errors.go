// Package service implements the panel's operations: credential checks,
// record lookup, role-shaped search and certificate generation.
package service

import "errors"

var (
	// ErrNotFound means no record matches the requested register number.
	ErrNotFound = errors.New("data not found")
	// ErrProviderUnavailable means the record source could not be read.
	ErrProviderUnavailable = errors.New("record provider unavailable")
	// ErrGeneration covers any failure while filling or saving a certificate.
	ErrGeneration = errors.New("certificate generation failed")
)
