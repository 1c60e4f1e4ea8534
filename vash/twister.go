// =======================
// vash/twister.go
// =======================

package vash

// twister is MT19937, array-seeded, with the 53-bit double and 31-bit
// bounded int derivations used by algorithm "1".
type twister struct {
	mt  [mtN]uint32
	mti int
}

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

func newTwister(key []uint32) *twister {
	t := &twister{}
	t.seedArray(key)
	return t
}

func (t *twister) seedScalar(s uint32) {
	t.mt[0] = s
	for i := 1; i < mtN; i++ {
		prev := t.mt[i-1]
		t.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	t.mti = mtN
}

func (t *twister) seedArray(key []uint32) {
	t.seedScalar(19650218)

	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := t.mt[i-1]
		t.mt[i] = (t.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			t.mt[0] = t.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := t.mt[i-1]
		t.mt[i] = (t.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			t.mt[0] = t.mt[mtN-1]
			i = 1
		}
	}
	t.mt[0] = 0x80000000
}

func (t *twister) generate() {
	var y uint32
	kk := 0
	for ; kk < mtN-mtM; kk++ {
		y = (t.mt[kk] & mtUpperMask) | (t.mt[kk+1] & mtLowerMask)
		t.mt[kk] = t.mt[kk+mtM] ^ (y >> 1) ^ (y&1)*mtMatrixA
	}
	for ; kk < mtN-1; kk++ {
		y = (t.mt[kk] & mtUpperMask) | (t.mt[kk+1] & mtLowerMask)
		t.mt[kk] = t.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ (y&1)*mtMatrixA
	}
	y = (t.mt[mtN-1] & mtUpperMask) | (t.mt[0] & mtLowerMask)
	t.mt[mtN-1] = t.mt[mtM-1] ^ (y >> 1) ^ (y&1)*mtMatrixA
	t.mti = 0
}

func (t *twister) next32() uint32 {
	if t.mti >= mtN {
		t.generate()
	}
	y := t.mt[t.mti]
	t.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (t *twister) nextDouble() float64 {
	y := t.next32()
	z := t.next32()
	return float64(uint64(y>>6)<<27+uint64(z>>5)) / (1 << 53)
}

func (t *twister) nextInt(n int32) int32 {
	if n&-n == n {
		return int32((int64(n) * int64(t.next32()>>1)) >> 31)
	}
	return rejectSample(n, func() int32 { return int32(t.next32() >> 1) })
}
