// =======================
// vash/gradient.go
// =======================

package vash

import "math"

// LinearGradient runs from 1 at p0 to -1 at p1 along the segment direction,
// computed by rotating each pixel into the segment frame. Used by "1.1".
type LinearGradient struct {
	leaf
	p0, p1 *Position
}

func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{p0: NewPosition(x0, y0), p1: NewPosition(x1, y1)}
}

func drawLinearGradient(src Source) *LinearGradient {
	p0 := drawPosition(src)
	p1 := drawPosition(src)
	return &LinearGradient{p0: p0, p1: p1}
}

func (*LinearGradient) Op() Operation     { return OpGradientLinear }
func (n *LinearGradient) Values() []Value { return []Value{n.p0, n.p1} }

func (n *LinearGradient) Clone() Node {
	return &LinearGradient{p0: n.p0.clone(), p1: n.p1.clone()}
}

func (n *LinearGradient) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	x0, y0 := float32(n.p0.X), float32(n.p0.Y)
	x1, y1 := float32(n.p1.X), float32(n.p1.Y)

	// Rotating by 3pi/2 - angle puts p1 on the negative Y axis, so the
	// projected distance is offset by +1.
	ang := math.Pi*3.0/2.0 - math.Atan2(float64(y1-y0), float64(x1-x0))
	length := distance(x0, y0, x1, y1)
	sa := float32(math.Sin(ang))
	ca := float32(math.Cos(ang))

	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		pY := Y[j] - y0
		for i := 0; i < ip.w; i++ {
			pX := X[i] - x0
			ppY := float32(pX*sa) + float32(pY*ca)
			color := ppY/length + 1
			color -= 0.5
			color *= 2
			out.Set(i, j, clampf(color))
		}
	}
	return out
}

// LegacyLinearGradient is the slope/intercept gradient of algorithms "1" and
// "1-fast". Near-vertical segments are computed on the plane mirrored about
// y=x and flipped back; on non-square images that flip also mirrors the
// result, and the output is kept that way.
type LegacyLinearGradient struct {
	leaf
	p0, p1 *Position
}

func NewLegacyLinearGradient(x0, y0, x1, y1 float64) *LegacyLinearGradient {
	return &LegacyLinearGradient{p0: NewPosition(x0, y0), p1: NewPosition(x1, y1)}
}

func drawLegacyLinearGradient(src Source) *LegacyLinearGradient {
	p0 := drawPosition(src)
	p1 := drawPosition(src)
	return &LegacyLinearGradient{p0: p0, p1: p1}
}

func (*LegacyLinearGradient) Op() Operation     { return OpGradientLinear }
func (n *LegacyLinearGradient) Values() []Value { return []Value{n.p0, n.p1} }

func (n *LegacyLinearGradient) Clone() Node {
	return &LegacyLinearGradient{p0: n.p0.clone(), p1: n.p1.clone()}
}

func (n *LegacyLinearGradient) Compute(ip *ImageParameters) *Plane {
	x0, y0 := float32(n.p0.X), float32(n.p0.Y)
	x1, y1 := float32(n.p1.X), float32(n.p1.Y)
	out := ip.GetPlane()

	if x1-x0 >= 0.1 {
		slopeGradient(out, ip.x, ip.y, x0, y0, x1, y1)
		return out
	}

	if ip.w == ip.h {
		slopeGradient(out, ip.x, ip.y, y0, x0, y1, x1)
		tmp := ip.GetPlane()
		for j := 0; j < ip.h; j++ {
			for i := 0; i < ip.w; i++ {
				tmp.Set(i, j, out.At(j, i))
			}
		}
		ip.PutPlane(out)
		return tmp
	}

	yx := ip.getYXPlane()
	slopeGradient(yx, ip.y, ip.x, y0, x0, y1, x1)
	for j := 0; j < ip.h; j++ {
		for i := 0; i < ip.w; i++ {
			out.Set(i, j, yx.At(ip.h-j-1, ip.w-i-1))
		}
	}
	ip.putYXPlane(yx)
	return out
}

// slopeGradient fills out (len(X) columns by len(Y) rows) by projecting each
// pixel onto the line through p0 and p1. Pixels projecting past either end
// saturate to -1 or 1.
func slopeGradient(out *Plane, X, Y []float32, x0, y0, x1, y1 float32) {
	m := (y1 - y0) / (x1 - x0)
	b := float32(m*x0) - y0
	d0to1 := distance(x0, y0, x1, y1)
	mm := float32(m * m)
	mb := float32(m * b)

	for j := range Y {
		for i := range X {
			intX := (float32(m*Y[j]) + X[i] - mb) / (mm + 1)
			intY := (float32(mm*Y[j]) + float32(m*X[i]) + b) / (mm + 1)

			d0toInt := distance(x0, y0, intX, intY)
			d1toInt := distance(x1, y1, intX, intY)
			d := d0toInt / d0to1

			if float64(d0toInt+d1toInt) > float64(d0to1)+0.0001 {
				if d1toInt > d0toInt {
					out.Set(i, j, -1)
				} else {
					out.Set(i, j, 1)
				}
			} else {
				out.Set(i, j, float32(d*2)-1)
			}
		}
	}
}
