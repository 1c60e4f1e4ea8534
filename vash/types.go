// =======================
// vash/types.go
// =======================

package vash

import "github.com/pkg/errors"

const (
	// Version of the tool. Algorithm identifiers are versioned separately.
	Version = "1.1.0"

	// SaltSize is the salt length, in bytes, every known algorithm takes.
	SaltSize = 512 / 8

	// MinImageSize is the smallest accepted width or height. Anti-aliased
	// shapes read the coordinate table three columns deep.
	MinImageSize = 4

	// DefaultWidth and DefaultHeight are the CLI defaults.
	DefaultWidth  = 128
	DefaultHeight = 128

	// MaxPlaneCacheBytes caps the bytes held by planes that are either
	// outstanding or sitting in the free list.
	MaxPlaneCacheBytes = 64 * 1024 * 1024
)

// Algorithm identifies a frozen generation algorithm.
type Algorithm string

const (
	Algorithm1Fast Algorithm = "1-fast"
	Algorithm1     Algorithm = "1"
	Algorithm11    Algorithm = "1.1"
)

// seedKind selects the Seed backend.
type seedKind int

const (
	seedLCG seedKind = iota
	seedTwister
	seedHKDF
)

// gradientStyle selects the GRADIENT_LINEAR implementation.
type gradientStyle int

const (
	gradientLegacy gradientStyle = iota
	gradientRotated
)

// OpParams weights an operation for one algorithm. Channels is the expected
// number of RGB channels the operation may appear in, in [0,3].
type OpParams struct {
	Ratio    float64
	Channels float64
}

// AlgorithmInfo describes a registry entry for listings.
type AlgorithmInfo struct {
	Name       Algorithm
	Deprecated bool
}

// ParseAlgorithm validates an identifier against the registry.
func ParseAlgorithm(s string) (Algorithm, error) {
	if _, err := lookupAlgorithm(Algorithm(s)); err != nil {
		return "", err
	}
	return Algorithm(s), nil
}

// SaltSizeForAlgorithm returns the number of salt bytes algo takes.
func SaltSizeForAlgorithm(algo Algorithm) (int, error) {
	if _, err := lookupAlgorithm(algo); err != nil {
		return 0, err
	}
	return SaltSize, nil
}

// NormalizeSalt pads with zeros or truncates salt to the size algo takes.
func NormalizeSalt(algo Algorithm, salt []byte) ([]byte, error) {
	size, err := SaltSizeForAlgorithm(algo)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, salt)
	return out, nil
}

func checkSalt(salt []byte) error {
	if salt != nil && len(salt) != SaltSize {
		return errors.Wrapf(ErrInvalidSalt, "salt must be %d bytes, got %d", SaltSize, len(salt))
	}
	return nil
}
