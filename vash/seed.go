// =======================
// vash/seed.go
// =======================

package vash

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/md5"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/binary"
	"hash"
	"io"

	"github.com/pkg/errors"
)

// Source is the stream of random draws consumed while building a tree.
// *Seed is the production implementation.
type Source interface {
	NextDouble() float64
	NextInt(n int) (int, error)
}

// generator is one of the bit-exact PRNG backends.
type generator interface {
	nextDouble() float64
	nextInt(n int32) int32
}

// Seed is a versioned deterministic random stream derived from a digest of
// salt and data. The order of draws made against a Seed is part of the
// compatibility contract of its algorithm.
type Seed struct {
	algo Algorithm
	gen  generator
	used int
}

// NewSeed digests data (read to EOF) and salt under algo. A nil salt selects
// the algorithm default; otherwise it must be exactly SaltSize bytes.
func NewSeed(algo Algorithm, salt []byte, data io.Reader) (*Seed, error) {
	spec, err := lookupAlgorithm(algo)
	if err != nil {
		return nil, err
	}
	if err := checkSalt(salt); err != nil {
		return nil, err
	}

	var gen generator
	switch spec.seed {
	case seedLCG:
		gen, err = newLCGGenerator(salt, data)
	case seedTwister:
		gen, err = newTwisterGenerator(salt, data)
	case seedHKDF:
		gen, err = newHKDFGenerator(salt, data)
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "no seed backend for %q", algo)
	}
	if err != nil {
		return nil, err
	}

	return &Seed{algo: algo, gen: gen}, nil
}

// NextDouble returns the next value in [0,1).
func (s *Seed) NextDouble() float64 {
	s.used += 53
	return s.gen.nextDouble()
}

// NextInt returns the next value in [0,n).
func (s *Seed) NextInt(n int) (int, error) {
	if n <= 0 || n > 1<<31-1 {
		return 0, errors.Wrapf(ErrInvalidArgument, "nextInt bound must be in (0, 2^31), got %d", n)
	}
	s.used += 31
	return int(s.gen.nextInt(int32(n))), nil
}

// Algorithm returns the algorithm the seed was built for.
func (s *Seed) Algorithm() Algorithm {
	return s.algo
}

// EntropyUsed returns the number of bits handed out so far.
func (s *Seed) EntropyUsed() int {
	return s.used
}

func newDigest(h crypto.Hash) (hash.Hash, error) {
	if !h.Available() {
		return nil, errors.Wrapf(ErrMissingCryptoPrimitive, "%s is not available", h)
	}
	return h.New(), nil
}

func newMAC(h crypto.Hash, key []byte) (hash.Hash, error) {
	if !h.Available() {
		return nil, errors.Wrapf(ErrMissingCryptoPrimitive, "HMAC-%s is not available", h)
	}
	return hmac.New(h.New, key), nil
}

// digestStream feeds salt and then all of data into h.
func digestStream(h hash.Hash, salt []byte, data io.Reader) ([]byte, error) {
	if salt != nil {
		h.Write(salt)
	}
	if data != nil {
		if _, err := io.Copy(h, data); err != nil {
			return nil, errors.Wrap(err, "reading seed data")
		}
	}
	return h.Sum(nil), nil
}

func newLCGGenerator(salt []byte, data io.Reader) (generator, error) {
	h, err := newDigest(crypto.MD5)
	if err != nil {
		return nil, err
	}
	sum, err := digestStream(h, salt, data)
	if err != nil {
		return nil, err
	}

	var seed int64
	for _, b := range sum[:6] {
		seed = seed<<8 | int64(b)
	}
	return newLCG(seed), nil
}

func newTwisterGenerator(salt []byte, data io.Reader) (generator, error) {
	h, err := newDigest(crypto.SHA512)
	if err != nil {
		return nil, err
	}
	sum, err := digestStream(h, salt, data)
	if err != nil {
		return nil, err
	}

	key := make([]uint32, len(sum)/4)
	for i := range key {
		key[i] = binary.BigEndian.Uint32(sum[i*4:])
	}
	return newTwister(key), nil
}

func newHKDFGenerator(salt []byte, data io.Reader) (generator, error) {
	if salt == nil {
		salt = hkdfDefaultSalt[:]
	}
	extract, err := newMAC(crypto.SHA512, salt)
	if err != nil {
		return nil, err
	}
	prk, err := digestStream(extract, nil, data)
	if err != nil {
		return nil, err
	}
	expand, err := newMAC(crypto.SHA256, prk[:hkdfBlockSize])
	if err != nil {
		return nil, err
	}
	return newHKDFStream(expand), nil
}
