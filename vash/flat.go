// =======================
// vash/flat.go
// =======================

package vash

import "math"

const (
	// FlatThreshold is how far a channel may stray from its mean before the
	// pixel counts as different.
	FlatThreshold = 8

	// FlatDiversity is the largest diversity still considered flat.
	FlatDiversity = 0.05
)

// Diversity returns the fraction of pixels in a packed 3-byte buffer that
// differ from the per-channel mean by more than FlatThreshold in any
// channel. Channel order does not matter.
func Diversity(pix []byte) float64 {
	n := len(pix) / 3
	if n == 0 {
		return 0
	}

	var sum [3]float64
	for i := 0; i < n*3; i += 3 {
		sum[0] += float64(pix[i])
		sum[1] += float64(pix[i+1])
		sum[2] += float64(pix[i+2])
	}
	mean := [3]float64{sum[0] / float64(n), sum[1] / float64(n), sum[2] / float64(n)}

	different := 0
	for i := 0; i < n*3; i += 3 {
		for c := 0; c < 3; c++ {
			if math.Abs(float64(pix[i+c])-mean[c]) > FlatThreshold {
				different++
				break
			}
		}
	}
	return float64(different) / float64(n)
}

// IsFlat reports whether a render is close to a single colour.
func IsFlat(pix []byte) bool {
	return Diversity(pix) <= FlatDiversity
}
