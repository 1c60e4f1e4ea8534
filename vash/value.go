// =======================
// vash/value.go
// =======================

package vash

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Value is a per-node parameter that does not vary across the plane.
type Value interface {
	Clone() Value
	String() string
}

// Bounded is clipped to its range, never wrapped.
type Bounded struct {
	V, Lower, Upper float64
}

// NewBounded rejects v outside [lower, upper].
func NewBounded(v, lower, upper float64) (*Bounded, error) {
	if !(v >= lower && v <= upper) {
		return nil, errors.Wrapf(ErrInvalidArgument, "bounded value %v is out of range [%v,%v]", v, lower, upper)
	}
	return &Bounded{V: v, Lower: lower, Upper: upper}, nil
}

func drawBounded(src Source, lower, upper float64) *Bounded {
	return &Bounded{V: float64(src.NextDouble()*(upper-lower)) + lower, Lower: lower, Upper: upper}
}

func (b *Bounded) Clone() Value { return b.clone() }

func (b *Bounded) clone() *Bounded {
	c := *b
	return &c
}

func (b *Bounded) String() string { return fmt.Sprintf("B[%.2f]", b.V) }

// Wrapping reduces into [Lower, Upper) modulo the range.
type Wrapping struct {
	V, Lower, Upper float64
}

// NewWrapping wraps v into [lower, upper).
func NewWrapping(v, lower, upper float64) (*Wrapping, error) {
	if !(upper > lower) {
		return nil, errors.Wrapf(ErrInvalidArgument, "wrapping range [%v,%v) is empty", lower, upper)
	}
	return &Wrapping{V: wrap(v, lower, upper), Lower: lower, Upper: upper}, nil
}

func drawWrapping(src Source, lower, upper float64) *Wrapping {
	return &Wrapping{V: float64(src.NextDouble()*(upper-lower)) + lower, Lower: lower, Upper: upper}
}

func wrap(v, lower, upper float64) float64 {
	span := upper - lower
	r := math.Mod(v-lower, span)
	if r < 0 {
		r += span
	}
	if r >= span {
		r = 0
	}
	return lower + r
}

func (w *Wrapping) Clone() Value { return w.clone() }

func (w *Wrapping) clone() *Wrapping {
	c := *w
	return &c
}

func (w *Wrapping) String() string { return fmt.Sprintf("W[%.2f]", w.V) }

// Position is an unconstrained 2-tuple.
type Position struct {
	X, Y float64
}

// NewPosition builds a position at (x, y).
func NewPosition(x, y float64) *Position {
	return &Position{X: x, Y: y}
}

// drawPosition takes x then y, each mapped from [0,1) onto [-1,1).
func drawPosition(src Source) *Position {
	x := src.NextDouble()*2.0 - 1.0
	y := src.NextDouble()*2.0 - 1.0
	return &Position{X: x, Y: y}
}

func (p *Position) Clone() Value { return p.clone() }

func (p *Position) clone() *Position {
	c := *p
	return &c
}

func (p *Position) String() string { return fmt.Sprintf("[%.2f,%.2f]", p.X, p.Y) }
