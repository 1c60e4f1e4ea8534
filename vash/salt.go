// =======================
// vash/salt.go
// =======================

package vash

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
)

// GenerateSalt reads a fresh salt of the size algo takes from r, or from
// crypto/rand when r is nil.
func GenerateSalt(algo Algorithm, r io.Reader) ([]byte, error) {
	size, err := SaltSizeForAlgorithm(algo)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = rand.Reader
	}

	salt := make([]byte, size)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, errors.Wrap(err, "salt generation failed")
	}
	return salt, nil
}

// EncodeSalt returns salt in the base64 form the salt flag accepts.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// DecodeSalt parses a base64 salt and fits it to algo.
func DecodeSalt(algo Algorithm, s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSalt, "salt is not valid base64")
	}
	return NormalizeSalt(algo, raw)
}
