// =======================
// vash/plane.go
// =======================

package vash

import (
	"github.com/pkg/errors"
)

// Plane is a W×H buffer of per-pixel values, row-major. Values are
// conventionally in [-1,1].
type Plane struct {
	W, H   int
	Data   []float32
	pooled bool
}

func newPlane(w, h int) *Plane {
	return &Plane{W: w, H: h, Data: make([]float32, w*h)}
}

// At returns the value at column x, row y.
func (p *Plane) At(x, y int) float32 { return p.Data[y*p.W+x] }

// Set stores v at column x, row y.
func (p *Plane) Set(x, y int, v float32) { p.Data[y*p.W+x] = v }

// ImageParameters holds the per-resolution coordinate tables and a free list
// of planes of that resolution. It is not safe for concurrent use; give every
// concurrent render its own instance.
type ImageParameters struct {
	w, h int
	x, y []float32

	free []*Plane
	gets int64
	puts int64

	// yx is the transposed plane used by the legacy linear gradient.
	yx *Plane
}

// NewImageParameters precomputes logical coordinates for a w×h image:
// X runs from -1 to 1 left to right and Y from 1 to -1 top to bottom, both
// sampled at pixel centres.
func NewImageParameters(w, h int) (*ImageParameters, error) {
	if w < MinImageSize || h < MinImageSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "image size %dx%d is below %dx%d", w, h, MinImageSize, MinImageSize)
	}

	ip := &ImageParameters{
		w: w,
		h: h,
		x: make([]float32, w),
		y: make([]float32, h),
	}

	dx := float32(2.0) / float32(w)
	dy := float32(2.0) / float32(h)
	gx := float32(-1.0) + dx/2.0
	for i := range ip.x {
		ip.x[i] = gx
		gx += dx
	}
	gy := float32(1.0) - dy/2.0
	for j := range ip.y {
		ip.y[j] = gy
		gy -= dy
	}
	return ip, nil
}

// Width of the image in pixels.
func (ip *ImageParameters) Width() int { return ip.w }

// Height of the image in pixels.
func (ip *ImageParameters) Height() int { return ip.h }

// XValues maps column index to logical X. The slice is shared; do not modify.
func (ip *ImageParameters) XValues() []float32 { return ip.x }

// YValues maps row index to logical Y. The slice is shared; do not modify.
func (ip *ImageParameters) YValues() []float32 { return ip.y }

func (ip *ImageParameters) planeBytes() int64 {
	return int64(ip.w) * int64(ip.h) * 4
}

// GetPlane borrows a plane. Its contents are unspecified.
func (ip *ImageParameters) GetPlane() *Plane {
	ip.gets++
	if n := len(ip.free); n > 0 {
		p := ip.free[n-1]
		ip.free[n-1] = nil
		ip.free = ip.free[:n-1]
		p.pooled = false
		return p
	}
	return newPlane(ip.w, ip.h)
}

// PutPlane returns a plane taken with GetPlane. The plane is kept for reuse
// while outstanding plus cached planes stay under MaxPlaneCacheBytes.
// Planes of another size and planes already returned are ignored.
func (ip *ImageParameters) PutPlane(p *Plane) {
	if p == nil || p.pooled || p.W != ip.w || p.H != ip.h {
		return
	}
	ip.puts++
	outstanding := (ip.gets - ip.puts + int64(len(ip.free))) * ip.planeBytes()
	if outstanding < MaxPlaneCacheBytes {
		p.pooled = true
		ip.free = append(ip.free, p)
	}
}

// getYXPlane borrows the h×w plane used to compute on mirrored coordinates.
func (ip *ImageParameters) getYXPlane() *Plane {
	if p := ip.yx; p != nil {
		ip.yx = nil
		return p
	}
	return newPlane(ip.h, ip.w)
}

func (ip *ImageParameters) putYXPlane(p *Plane) {
	if p != nil && p.W == ip.h && p.H == ip.w {
		ip.yx = p
	}
}

// PoolStats reports borrow counters and the number of cached planes.
type PoolStats struct {
	Gets, Puts  int64
	Cached      int
	CachedBytes int64
}

// Stats returns the current pool counters.
func (ip *ImageParameters) Stats() PoolStats {
	return PoolStats{
		Gets:        ip.gets,
		Puts:        ip.puts,
		Cached:      len(ip.free),
		CachedBytes: int64(len(ip.free)) * ip.planeBytes(),
	}
}
