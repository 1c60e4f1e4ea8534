// =======================
// vash/shapes.go
// =======================

package vash

import (
	"math"

	"github.com/pkg/errors"
)

// Const broadcasts one value over the plane.
type Const struct {
	leaf
	v *Bounded
}

// NewConst builds a constant plane. v must be in [-1,1].
func NewConst(v float64) (*Const, error) {
	b, err := NewBounded(v, -1, 1)
	if err != nil {
		return nil, err
	}
	return &Const{v: b}, nil
}

func drawConst(src Source) *Const {
	return &Const{v: drawBounded(src, -1, 1)}
}

func (*Const) Op() Operation     { return OpConst }
func (n *Const) Values() []Value { return []Value{n.v} }
func (n *Const) Clone() Node     { return &Const{v: n.v.clone()} }

func (n *Const) Compute(ip *ImageParameters) *Plane {
	v := float32(n.v.V)
	out := ip.GetPlane()
	for i := range out.Data {
		out.Data[i] = v
	}
	return out
}

// Ellipse is a filled ellipse with foci f0 and f1. size scales the string
// length between the focal distance and twice that.
type Ellipse struct {
	leaf
	f0, f1 *Position
	size   *Bounded
}

// NewEllipse builds an ellipse. size must be in [0.1,1].
func NewEllipse(x0, y0, x1, y1, size float64) (*Ellipse, error) {
	s, err := NewBounded(size, 0.1, 1)
	if err != nil {
		return nil, err
	}
	return &Ellipse{f0: NewPosition(x0, y0), f1: NewPosition(x1, y1), size: s}, nil
}

func drawEllipse(src Source) *Ellipse {
	f0 := drawPosition(src)
	f1 := drawPosition(src)
	s := drawBounded(src, 0.1, 1)
	return &Ellipse{f0: f0, f1: f1, size: s}
}

func (*Ellipse) Op() Operation     { return OpEllipse }
func (n *Ellipse) Values() []Value { return []Value{n.f0, n.f1, n.size} }

func (n *Ellipse) Clone() Node {
	return &Ellipse{f0: n.f0.clone(), f1: n.f1.clone(), size: n.size.clone()}
}

func (n *Ellipse) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	x0, y0 := float32(n.f0.X), float32(n.f0.Y)
	x1, y1 := float32(n.f1.X), float32(n.f1.Y)
	minDist := distance(x0, y0, x1, y1)
	sz := minDist + float32(float32(n.size.V)*minDist)
	fringe := X[2] - X[0]

	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		pY := Y[j]
		for i := 0; i < ip.w; i++ {
			pX := X[i]
			dist := distance(pX, pY, x0, y0) + distance(pX, pY, x1, y1)
			switch {
			case dist < sz:
				out.Set(i, j, 1)
			case dist < sz+fringe:
				out.Set(i, j, 1-float32((dist-sz)/fringe*2))
			default:
				out.Set(i, j, -1)
			}
		}
	}
	return out
}

const flowerMaxSize = 2.5

// Flower is an n-petalled star around center, solid inside size*ratio.
type Flower struct {
	leaf
	center *Position
	angle  *Wrapping
	size   *Bounded
	ratio  *Bounded
	points int
}

// NewFlower builds a flower. angle is in degrees and wrapped; size must be in
// [0,2.5], ratio in [0,1] and points in [1,11].
func NewFlower(x, y, angle, size, ratio float64, points int) (*Flower, error) {
	a, err := NewWrapping(angle, 0, 360)
	if err != nil {
		return nil, err
	}
	s, err := NewBounded(size, 0, flowerMaxSize)
	if err != nil {
		return nil, err
	}
	r, err := NewBounded(ratio, 0, 1)
	if err != nil {
		return nil, err
	}
	if points < 1 || points > 11 {
		return nil, errors.Wrapf(ErrInvalidArgument, "flower needs 1 to 11 points, got %d", points)
	}
	return &Flower{center: NewPosition(x, y), angle: a, size: s, ratio: r, points: points}, nil
}

func drawFlower(src Source) *Flower {
	c := drawPosition(src)
	a := drawWrapping(src, 0, 360)
	s := drawBounded(src, 0, flowerMaxSize)
	r := drawBounded(src, 0, 1)
	points := int(src.NextDouble()*11.0) + 1
	return &Flower{center: c, angle: a, size: s, ratio: r, points: points}
}

func (*Flower) Op() Operation     { return OpFlower }
func (n *Flower) Values() []Value { return []Value{n.center, n.angle, n.size, n.ratio} }

func (n *Flower) Clone() Node {
	return &Flower{
		center: n.center.clone(),
		angle:  n.angle.clone(),
		size:   n.size.clone(),
		ratio:  n.ratio.clone(),
		points: n.points,
	}
}

// rotation returns cos and sin of a clockwise angle in degrees with 0 up.
func rotation(degrees float32) (ca, sa float32) {
	rad := float64(degrees)*math.Pi/180.0 - math.Pi/2.0
	return float32(math.Cos(rad)), float32(math.Sin(rad))
}

func (n *Flower) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	cx, cy := float32(n.center.X), float32(n.center.Y)
	sz := float32(n.size.V)
	ratio := float32(n.ratio.V)
	inner := float32(sz * ratio)
	fringe := X[2] - X[0]
	ca, sa := rotation(float32(n.angle.V))
	points := float32(n.points)

	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		y0 := Y[j] - cy
		for i := 0; i < ip.w; i++ {
			x0 := X[i] - cx

			d := float32(math.Sqrt(float64(float32(x0*x0) + float32(y0*y0))))
			x1 := float32(x0*ca) - float32(y0*sa)
			y1 := float32(x0*sa) + float32(y0*ca)

			if d < inner {
				out.Set(i, j, 1)
				continue
			}
			if d > sz {
				out.Set(i, j, -1)
				continue
			}

			theta := float32((math.Atan2(float64(y1), float64(x1))/math.Pi + 1.0) / 2.0)
			expanded := float32(theta * points)
			offset := expanded - float32(int32(expanded))
			offset = float32(offset*2) - 1
			r := float32((d - inner) * (1 / (sz - inner)))
			dist := r - float32(math.Abs(float64(offset)))

			switch {
			case dist < 0:
				out.Set(i, j, 1)
			case dist < fringe:
				out.Set(i, j, 1-(2*dist/fringe))
			default:
				out.Set(i, j, -1)
			}
		}
	}
	return out
}

// RadialGradient falls off from 1 at center along a rotated ellipse with
// half axes w and h.
type RadialGradient struct {
	leaf
	center *Position
	w, h   *Bounded
	angle  *Wrapping
}

// NewRadialGradient builds a radial gradient. w and h must be in [0.1,0.8];
// angle is in degrees and wrapped.
func NewRadialGradient(x, y, w, h, angle float64) (*RadialGradient, error) {
	wb, err := NewBounded(w, 0.1, 0.8)
	if err != nil {
		return nil, err
	}
	hb, err := NewBounded(h, 0.1, 0.8)
	if err != nil {
		return nil, err
	}
	a, err := NewWrapping(angle, 0, 360)
	if err != nil {
		return nil, err
	}
	return &RadialGradient{center: NewPosition(x, y), w: wb, h: hb, angle: a}, nil
}

func drawRadialGradient(src Source) *RadialGradient {
	c := drawPosition(src)
	w := drawBounded(src, 0.1, 0.8)
	h := drawBounded(src, 0.1, 0.8)
	a := drawWrapping(src, 0, 360)
	return &RadialGradient{center: c, w: w, h: h, angle: a}
}

func (*RadialGradient) Op() Operation { return OpGradientRadial }

func (n *RadialGradient) Values() []Value {
	return []Value{n.center, n.w, n.h, n.angle}
}

func (n *RadialGradient) Clone() Node {
	return &RadialGradient{
		center: n.center.clone(),
		w:      n.w.clone(),
		h:      n.h.clone(),
		angle:  n.angle.clone(),
	}
}

func (n *RadialGradient) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	cx, cy := float32(n.center.X), float32(n.center.Y)
	w := float32(n.w.V)
	h := float32(n.h.V)
	ca, sa := rotation(float32(n.angle.V))
	twoOverSqrtTwo := float32(2.0 / math.Sqrt(2.0))

	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		y0 := Y[j] - cy
		for i := 0; i < ip.w; i++ {
			x0 := X[i] - cx
			x1 := float32(x0*ca) - float32(y0*sa)
			y1 := float32(x0*sa) + float32(y0*ca)
			x2 := x1 / w
			y2 := y1 / h
			s := float32(math.Sqrt(float64(float32(x2*x2) + float32(y2*y2))))
			out.Set(i, j, clampf(float32(-s*twoOverSqrtTwo)+1))
		}
	}
	return out
}

// PolarTheta is the angle around center, rotated by angle*pi and normalised
// to [-1,1].
type PolarTheta struct {
	leaf
	center *Position
	angle  *Wrapping
}

// NewPolarTheta builds a polar angle field. angle is in half turns, wrapped
// into [-1,1).
func NewPolarTheta(x, y, angle float64) (*PolarTheta, error) {
	a, err := NewWrapping(angle, -1, 1)
	if err != nil {
		return nil, err
	}
	return &PolarTheta{center: NewPosition(x, y), angle: a}, nil
}

func drawPolarTheta(src Source) *PolarTheta {
	c := drawPosition(src)
	a := drawWrapping(src, -1, 1)
	return &PolarTheta{center: c, angle: a}
}

func (*PolarTheta) Op() Operation     { return OpPolarTheta }
func (n *PolarTheta) Values() []Value { return []Value{n.center, n.angle} }

func (n *PolarTheta) Clone() Node {
	return &PolarTheta{center: n.center.clone(), angle: n.angle.clone()}
}

func (n *PolarTheta) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	angle := float32(n.angle.V)
	ca := float32(math.Cos(float64(angle) * math.Pi))
	sa := float32(math.Sin(float64(angle) * math.Pi))
	cx, cy := float32(n.center.X), float32(n.center.Y)

	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		y0 := Y[j] - cy
		for i := 0; i < ip.w; i++ {
			x0 := X[i] - cx
			x1 := float32(x0*ca) - float32(y0*sa)
			y1 := float32(x0*sa) + float32(y0*ca)
			out.Set(i, j, float32(math.Atan2(float64(y1), float64(x1))/math.Pi))
		}
	}
	return out
}
