// =======================
// vash/lcg.go
// =======================

package vash

// lcg is the 48-bit linear congruential generator of java.util.Random,
// kept bit-for-bit for algorithm "1-fast".
type lcg struct {
	state int64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = 1<<48 - 1
)

func newLCG(seed int64) *lcg {
	return &lcg{state: (seed ^ lcgMultiplier) & lcgMask}
}

func (g *lcg) next(bits uint) int32 {
	g.state = (g.state*lcgMultiplier + lcgAddend) & lcgMask
	return int32(uint64(g.state) >> (48 - bits))
}

func (g *lcg) nextDouble() float64 {
	hi := int64(g.next(26))
	lo := int64(g.next(27))
	return float64(hi<<27+lo) / (1 << 53)
}

func (g *lcg) nextInt(n int32) int32 {
	if n&-n == n {
		return int32((int64(n) * int64(g.next(31))) >> 31)
	}
	return rejectSample(n, func() int32 { return g.next(31) })
}

// rejectSample draws 31-bit values until one maps onto [0,n) without
// modulo bias. The overflow test relies on int32 wrap-around.
func rejectSample(n int32, draw func() int32) int32 {
	for {
		bits := draw()
		val := bits % n
		if bits-val+(n-1) >= 0 {
			return val
		}
	}
}
