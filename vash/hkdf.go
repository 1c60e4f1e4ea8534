// =======================
// vash/hkdf.go
// =======================

package vash

import "hash"

// hkdfBlockSize is the HMAC-SHA256 output size and the expand key length.
const hkdfBlockSize = 256 / 8

// hkdfDefaultSalt is the first 512 bits of pi.
var hkdfDefaultSalt = [SaltSize]byte{
	201, 15, 218, 162, 33, 104, 194, 52,
	196, 198, 98, 139, 128, 220, 28, 209,
	41, 2, 78, 8, 138, 103, 204, 116,
	2, 11, 190, 166, 59, 19, 155, 34,
	81, 74, 8, 121, 142, 52, 4, 221,
	239, 149, 25, 179, 205, 58, 67, 27,
	48, 43, 10, 109, 242, 95, 20, 55,
	79, 225, 53, 109, 109, 81, 194, 69,
}

var hkdfInfo = []byte("20110719 terrence@thevash.com VASH/hmacExpandInfoBytes")

// hkdfStream is the expand half of HKDF (RFC 5869), HMAC-SHA256 keyed with
// the truncated HMAC-SHA512 PRK. T(0) is a zero block and the counter is a
// four byte field, so the stream is effectively unbounded. Bits are handed
// out most significant first.
type hkdfStream struct {
	mac    hash.Hash
	block  [hkdfBlockSize]byte
	offset uint32
	bitpos int
	input  []byte
}

func newHKDFStream(mac hash.Hash) *hkdfStream {
	s := &hkdfStream{
		mac:   mac,
		input: make([]byte, 0, hkdfBlockSize+len(hkdfInfo)+4),
	}
	s.nextBlock()
	return s
}

// nextBlock computes T(i) = HMAC(T(i-1) || info || offset). The offset is
// written most significant byte first.
func (s *hkdfStream) nextBlock() {
	in := append(s.input[:0], s.block[:]...)
	in = append(in, hkdfInfo...)
	in = append(in,
		byte(s.offset>>24), byte(s.offset>>16),
		byte(s.offset>>8), byte(s.offset))

	s.mac.Reset()
	s.mac.Write(in)
	s.mac.Sum(s.block[:0])
	s.offset++
	s.bitpos = 0
	s.input = in
}

func (s *hkdfStream) nextBits(n int) int64 {
	var out int64
	for i := n - 1; i >= 0; i-- {
		b := s.block[s.bitpos>>3] >> (7 - uint(s.bitpos&7)) & 1
		out |= int64(b) << uint(i)
		s.bitpos++
		if s.bitpos == hkdfBlockSize*8 {
			s.nextBlock()
		}
	}
	return out
}

func (s *hkdfStream) nextDouble() float64 {
	hi := s.nextBits(26)
	lo := s.nextBits(27)
	return float64(hi<<27+lo) / (1 << 53)
}

func (s *hkdfStream) nextInt(n int32) int32 {
	if n&-n == n {
		return int32((int64(n) * s.nextBits(31)) >> 31)
	}
	return rejectSample(n, func() int32 { return int32(s.nextBits(31)) })
}
