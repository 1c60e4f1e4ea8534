// =======================
// vash/errors.go
// =======================

// Package vash turns data into a deterministic picture. A versioned Seed
// drives a weighted random walk that builds an expression tree over the image
// plane; evaluating the tree yields the pixels. Equal algorithm, salt and data
// always give equal bytes.
package vash

import "github.com/pkg/errors"

var (
	// ErrUnknownAlgorithm is returned for an algorithm identifier that is not
	// in the registry.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidSalt is returned when a salt has the wrong length.
	ErrInvalidSalt = errors.New("invalid salt")

	// ErrInvalidArgument covers bad draws, out of range values and
	// unconfigured renders.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingCryptoPrimitive is returned when a digest the algorithm needs
	// is not linked into the binary.
	ErrMissingCryptoPrimitive = errors.New("missing crypto primitive")

	// ErrUnknownFormat is returned for an unrecognised output image format.
	ErrUnknownFormat = errors.New("unknown image format")
)
