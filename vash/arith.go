// =======================
// vash/arith.go
// =======================

package vash

import "math"

// binaryCompute evaluates both children, applies f per pixel and returns the
// child planes to the pool.
func binaryCompute(ip *ImageParameters, kids []Node, f func(a, b float32) float32) *Plane {
	A := kids[0].Compute(ip)
	B := kids[1].Compute(ip)
	out := ip.GetPlane()
	for i := range out.Data {
		out.Data[i] = f(A.Data[i], B.Data[i])
	}
	ip.PutPlane(A)
	ip.PutPlane(B)
	return out
}

func unaryCompute(ip *ImageParameters, kids []Node, f func(a float32) float32) *Plane {
	A := kids[0].Compute(ip)
	out := ip.GetPlane()
	for i := range out.Data {
		out.Data[i] = f(A.Data[i])
	}
	ip.PutPlane(A)
	return out
}

// Absolute is |a|.
type Absolute struct{ branch }

func NewAbsolute(a Node) *Absolute {
	return &Absolute{branch: branch{kids: []Node{a}}}
}

func (*Absolute) Op() Operation   { return OpAbsolute }
func (*Absolute) Values() []Value { return nil }
func (n *Absolute) Clone() Node   { return &Absolute{branch: n.cloneKids()} }

func (n *Absolute) Compute(ip *ImageParameters) *Plane {
	return unaryCompute(ip, n.kids, func(a float32) float32 {
		return float32(math.Abs(float64(a)))
	})
}

// Invert is -a.
type Invert struct{ branch }

func NewInvert(a Node) *Invert {
	return &Invert{branch: branch{kids: []Node{a}}}
}

func (*Invert) Op() Operation   { return OpInvert }
func (*Invert) Values() []Value { return nil }
func (n *Invert) Clone() Node   { return &Invert{branch: n.cloneKids()} }

func (n *Invert) Compute(ip *ImageParameters) *Plane {
	return unaryCompute(ip, n.kids, func(a float32) float32 { return -a })
}

// Add is a+b, clamped.
type Add struct{ branch }

func NewAdd(a, b Node) *Add {
	return &Add{branch: branch{kids: []Node{a, b}}}
}

func (*Add) Op() Operation   { return OpAdd }
func (*Add) Values() []Value { return nil }
func (n *Add) Clone() Node   { return &Add{branch: n.cloneKids()} }

func (n *Add) Compute(ip *ImageParameters) *Plane {
	return binaryCompute(ip, n.kids, func(a, b float32) float32 { return clampf(a + b) })
}

// Divide is a/b, clamped, and 1 where b is zero.
type Divide struct{ branch }

func NewDivide(a, b Node) *Divide {
	return &Divide{branch: branch{kids: []Node{a, b}}}
}

func (*Divide) Op() Operation   { return OpDivide }
func (*Divide) Values() []Value { return nil }
func (n *Divide) Clone() Node   { return &Divide{branch: n.cloneKids()} }

func (n *Divide) Compute(ip *ImageParameters) *Plane {
	return binaryCompute(ip, n.kids, func(a, b float32) float32 {
		if b == 0 {
			return 1
		}
		return clampf(a / b)
	})
}

// Exponentiate is sign(a)*|a|^b scaled by 2/pi, clamped.
type Exponentiate struct{ branch }

func NewExponentiate(a, b Node) *Exponentiate {
	return &Exponentiate{branch: branch{kids: []Node{a, b}}}
}

func (*Exponentiate) Op() Operation   { return OpExponentiate }
func (*Exponentiate) Values() []Value { return nil }
func (n *Exponentiate) Clone() Node   { return &Exponentiate{branch: n.cloneKids()} }

func (n *Exponentiate) Compute(ip *ImageParameters) *Plane {
	twoOverPi := float32(2.0 / math.Pi)
	return binaryCompute(ip, n.kids, func(a, b float32) float32 {
		var val float32
		switch {
		case a == 0:
			val = 0
		case a < 0:
			val = float32(-math.Pow(float64(-a), float64(b)))
		default:
			val = float32(math.Pow(float64(a), float64(b)))
		}
		val *= twoOverPi
		return clampf(val)
	})
}

// Modulus is the truncated remainder of a/b, clamped. A zero divisor gives
// NaN.
type Modulus struct{ branch }

func NewModulus(a, b Node) *Modulus {
	return &Modulus{branch: branch{kids: []Node{a, b}}}
}

func (*Modulus) Op() Operation   { return OpModulus }
func (*Modulus) Values() []Value { return nil }
func (n *Modulus) Clone() Node   { return &Modulus{branch: n.cloneKids()} }

func (n *Modulus) Compute(ip *ImageParameters) *Plane {
	return binaryCompute(ip, n.kids, func(a, b float32) float32 {
		return clampf(float32(math.Mod(float64(a), float64(b))))
	})
}

// Multiply is a*b. The product is not clamped.
type Multiply struct{ branch }

func NewMultiply(a, b Node) *Multiply {
	return &Multiply{branch: branch{kids: []Node{a, b}}}
}

func (*Multiply) Op() Operation   { return OpMultiply }
func (*Multiply) Values() []Value { return nil }
func (n *Multiply) Clone() Node   { return &Multiply{branch: n.cloneKids()} }

func (n *Multiply) Compute(ip *ImageParameters) *Plane {
	return binaryCompute(ip, n.kids, func(a, b float32) float32 { return a * b })
}
