// =======================
// vash/trig.go
// =======================

package vash

import "math"

var (
	freqLimit  = float64(float32(math.Pi))
	phaseLimit = float64(float32(math.Pi))
)

// Sine is sin(a*freq + phase).
type Sine struct {
	branch
	freq  *Bounded
	phase *Wrapping
}

// NewSine builds a sine of a. freq must be in [-pi,pi]; phase is wrapped.
func NewSine(freq, phase float64, a Node) (*Sine, error) {
	f, err := NewBounded(freq, -freqLimit, freqLimit)
	if err != nil {
		return nil, err
	}
	p, err := NewWrapping(phase, -phaseLimit, phaseLimit)
	if err != nil {
		return nil, err
	}
	return &Sine{branch: branch{kids: []Node{a}}, freq: f, phase: p}, nil
}

func drawSine(src Source) *Sine {
	f := drawBounded(src, -freqLimit, freqLimit)
	p := drawWrapping(src, -phaseLimit, phaseLimit)
	return &Sine{branch: newBranch(1), freq: f, phase: p}
}

func (*Sine) Op() Operation     { return OpSine }
func (n *Sine) Values() []Value { return []Value{n.freq, n.phase} }

func (n *Sine) Clone() Node {
	return &Sine{branch: n.cloneKids(), freq: n.freq.clone(), phase: n.phase.clone()}
}

func (n *Sine) Compute(ip *ImageParameters) *Plane {
	freq := float32(n.freq.V)
	phase := float32(n.phase.V)
	return unaryCompute(ip, n.kids, func(a float32) float32 {
		return float32(math.Sin(float64(float32(a*freq) + phase)))
	})
}

// Sinc is sin(x)/x for x = a*freq + phase, clamped, and 1 at x == 0.
type Sinc struct {
	branch
	freq  *Bounded
	phase *Wrapping
}

// NewSinc builds a sinc of a. freq must be in [-pi,pi]; phase is wrapped.
func NewSinc(freq, phase float64, a Node) (*Sinc, error) {
	f, err := NewBounded(freq, -freqLimit, freqLimit)
	if err != nil {
		return nil, err
	}
	p, err := NewWrapping(phase, -phaseLimit, phaseLimit)
	if err != nil {
		return nil, err
	}
	return &Sinc{branch: branch{kids: []Node{a}}, freq: f, phase: p}, nil
}

func drawSinc(src Source) *Sinc {
	f := drawBounded(src, -freqLimit, freqLimit)
	p := drawWrapping(src, -phaseLimit, phaseLimit)
	return &Sinc{branch: newBranch(1), freq: f, phase: p}
}

func (*Sinc) Op() Operation     { return OpSinc }
func (n *Sinc) Values() []Value { return []Value{n.freq, n.phase} }

func (n *Sinc) Clone() Node {
	return &Sinc{branch: n.cloneKids(), freq: n.freq.clone(), phase: n.phase.clone()}
}

func (n *Sinc) Compute(ip *ImageParameters) *Plane {
	freq := float32(n.freq.V)
	phase := float32(n.phase.V)
	return unaryCompute(ip, n.kids, func(a float32) float32 {
		x := float32(a*freq) + phase
		if x == 0 {
			return 1
		}
		return clampf(float32(math.Sin(float64(x)) / float64(x)))
	})
}

// spiralFoldLimit stops the fold loops where subtracting one no longer
// changes a float32.
const spiralFoldLimit = 1 << 24

// Spiral folds the child value against the polar radius and a power of the
// polar angle around center.
type Spiral struct {
	branch
	center *Position
	n      *Bounded
	b      *Bounded
}

// NewSpiral builds a spiral around (x, y). n must be in [0,10], b in [-1,1].
func NewSpiral(x, y, n, b float64, v Node) (*Spiral, error) {
	nb, err := NewBounded(n, 0, 10)
	if err != nil {
		return nil, err
	}
	bb, err := NewBounded(b, -1, 1)
	if err != nil {
		return nil, err
	}
	return &Spiral{branch: branch{kids: []Node{v}}, center: NewPosition(x, y), n: nb, b: bb}, nil
}

func drawSpiral(src Source) *Spiral {
	c := drawPosition(src)
	n := drawBounded(src, 0, 10)
	b := drawBounded(src, -1, 1)
	return &Spiral{branch: newBranch(1), center: c, n: n, b: b}
}

func (*Spiral) Op() Operation     { return OpSpiral }
func (n *Spiral) Values() []Value { return []Value{n.center, n.n, n.b} }

func (n *Spiral) Clone() Node {
	return &Spiral{branch: n.cloneKids(), center: n.center.clone(), n: n.n.clone(), b: n.b.clone()}
}

func (n *Spiral) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	twoOverSqrtTwo := float32(2.0 / math.Sqrt(2.0))
	cx := float32(n.center.X)
	cy := float32(n.center.Y)
	pw := float64(float32(math.Floor(n.n.V)))
	b := float32(n.b.V)

	V := n.kids[0].Compute(ip)
	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		y0 := Y[j] - cy
		for i := 0; i < ip.w; i++ {
			x0 := X[i] - cx

			r := float32(float32(float32(x0*x0)+float32(y0*y0))*twoOverSqrtTwo) - 1
			theta := float32(math.Atan2(float64(y0), float64(x0)) / math.Pi)
			tmp := (V.At(i, j) - r) + float32(b*float32(math.Pow(float64(theta), pw)))

			for tmp > 1 && tmp < spiralFoldLimit {
				tmp -= 1
			}
			for tmp < -1 && tmp > -spiralFoldLimit {
				tmp += 1
			}
			tmp = float32(math.Abs(math.Abs(float64(tmp)) - 0.5))

			out.Set(i, j, float32(4*tmp)-1)
		}
	}
	ip.PutPlane(V)
	return out
}

// Squircle is a superellipse around center whose axes are displaced per
// pixel by the two children.
type Squircle struct {
	branch
	center *Position
	r      *Bounded
	n      *Bounded
}

// NewSquircle builds a squircle around (x, y). r must be in [0,2], n in [0,4].
func NewSquircle(x, y, r, n float64, a, b Node) (*Squircle, error) {
	rb, err := NewBounded(r, 0, 2)
	if err != nil {
		return nil, err
	}
	nb, err := NewBounded(n, 0, 4)
	if err != nil {
		return nil, err
	}
	return &Squircle{branch: branch{kids: []Node{a, b}}, center: NewPosition(x, y), r: rb, n: nb}, nil
}

func drawSquircle(src Source) *Squircle {
	c := drawPosition(src)
	r := drawBounded(src, 0, 2)
	n := drawBounded(src, 0, 4)
	return &Squircle{branch: newBranch(2), center: c, r: r, n: n}
}

func (*Squircle) Op() Operation     { return OpSquircle }
func (n *Squircle) Values() []Value { return []Value{n.center, n.r, n.n} }

func (n *Squircle) Clone() Node {
	return &Squircle{branch: n.cloneKids(), center: n.center.clone(), r: n.r.clone(), n: n.n.clone()}
}

func (n *Squircle) Compute(ip *ImageParameters) *Plane {
	X, Y := ip.x, ip.y
	cx := float32(n.center.X)
	cy := float32(n.center.Y)
	r := float64(float32(n.r.V))
	pw := float64(float32(n.n.V))

	A := n.kids[0].Compute(ip)
	B := n.kids[1].Compute(ip)
	out := ip.GetPlane()
	for j := 0; j < ip.h; j++ {
		y0 := Y[j] - cy
		for i := 0; i < ip.w; i++ {
			x0 := X[i] - cx
			a := float64(float32(math.Abs(float64(x0 - A.At(i, j)))))
			b := float64(float32(math.Abs(float64(y0 - B.At(i, j)))))
			numer := float32(-(math.Pow(a, pw) + math.Pow(b, pw)))
			denom := float32(math.Pow(r, pw))
			if denom == 0 {
				out.Set(i, j, 1)
			} else {
				out.Set(i, j, clampf(numer/denom))
			}
		}
	}
	ip.PutPlane(A)
	ip.PutPlane(B)
	return out
}
