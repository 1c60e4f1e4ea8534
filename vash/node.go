// =======================
// vash/node.go
// =======================

package vash

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Node is one operation in an expression tree. Compute returns a plane
// borrowed from ip; every child plane it consumed has already been returned.
//
// Per-pixel arithmetic is float32 throughout. Products that feed an add are
// wrapped in float32() so they are rounded before the add and never fused.
type Node interface {
	Op() Operation
	Children() []Node
	Values() []Value
	Compute(ip *ImageParameters) *Plane
	Clone() Node

	setChild(i int, child Node)
}

// branch holds the fixed-size child slots of an interior node.
type branch struct {
	kids []Node
}

func newBranch(arity int) branch {
	return branch{kids: make([]Node, arity)}
}

func (b *branch) Children() []Node { return b.kids }

func (b *branch) setChild(i int, child Node) {
	if b.kids[i] != nil {
		panic(fmt.Sprintf("vash: child slot %d filled twice", i))
	}
	b.kids[i] = child
}

func (b *branch) cloneKids() branch {
	c := newBranch(len(b.kids))
	for i, k := range b.kids {
		c.kids[i] = k.Clone()
	}
	return c
}

// leaf is embedded by nodes without children.
type leaf struct{}

func (leaf) Children() []Node { return nil }

func (leaf) setChild(i int, _ Node) {
	panic(fmt.Sprintf("vash: leaf has no child slot %d", i))
}

// newNode draws the parameters of op from src, in the order the algorithm
// contract fixes. Children are left empty.
func newNode(op Operation, src Source, gradient gradientStyle) (Node, error) {
	switch op {
	case OpRGB:
		return &RGB{branch: newBranch(3)}, nil

	case OpAbsolute:
		return &Absolute{branch: newBranch(1)}, nil
	case OpAdd:
		return &Add{branch: newBranch(2)}, nil
	case OpDivide:
		return &Divide{branch: newBranch(2)}, nil
	case OpExponentiate:
		return &Exponentiate{branch: newBranch(2)}, nil
	case OpInvert:
		return &Invert{branch: newBranch(1)}, nil
	case OpModulus:
		return &Modulus{branch: newBranch(2)}, nil
	case OpMultiply:
		return &Multiply{branch: newBranch(2)}, nil

	case OpSinc:
		return drawSinc(src), nil
	case OpSine:
		return drawSine(src), nil
	case OpSpiral:
		return drawSpiral(src), nil
	case OpSquircle:
		return drawSquircle(src), nil

	case OpConst:
		return drawConst(src), nil
	case OpEllipse:
		return drawEllipse(src), nil
	case OpFlower:
		return drawFlower(src), nil
	case OpGradientLinear:
		if gradient == gradientLegacy {
			return drawLegacyLinearGradient(src), nil
		}
		return drawLinearGradient(src), nil
	case OpGradientRadial:
		return drawRadialGradient(src), nil
	case OpPolarTheta:
		return drawPolarTheta(src), nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "no factory for %v", op)
}

// accumulateValues appends the values of n and its subtree, depth first.
func accumulateValues(n Node, out []Value) []Value {
	out = append(out, n.Values()...)
	for _, child := range n.Children() {
		if child != nil {
			out = accumulateValues(child, out)
		}
	}
	return out
}

// dump writes one line per node, indented two spaces per level.
func dump(w io.Writer, n Node, level int) error {
	vals := n.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	line := fmt.Sprintf("%s%s(%s)\n", strings.Repeat("  ", level), n.Op(), strings.Join(parts, ", "))
	if _, err := io.WriteString(w, line); err != nil {
		return errors.Wrap(err, "writing tree dump")
	}
	for _, child := range n.Children() {
		if child == nil {
			continue
		}
		if err := dump(w, child, level+1); err != nil {
			return err
		}
	}
	return nil
}

// countNodes returns the number of nodes and the depth of the subtree.
func countNodes(n Node) (nodes, depth int) {
	nodes = 1
	for _, child := range n.Children() {
		if child == nil {
			continue
		}
		cn, cd := countNodes(child)
		nodes += cn
		if cd > depth {
			depth = cd
		}
	}
	return nodes, depth + 1
}

// clampf limits v to [-1,1]. NaN passes through.
func clampf(v float32) float32 {
	switch {
	case v != v:
		return v
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}

// distance is the float32 euclidean distance between two points.
func distance(x0, y0, x1, y1 float32) float32 {
	dx := x1 - x0
	dy := y1 - y0
	return float32(math.Sqrt(float64(float32(dx*dx) + float32(dy*dy))))
}

// channelByte maps [-1,1] onto a byte as floor((v+1)/2*255) followed by a
// saturating conversion to int32 and truncation to the low eight bits.
// Out of range inputs therefore wrap instead of clamping.
func channelByte(v float32) byte {
	f := math.Floor(float64((v + 1) / 2 * 255))
	var i int32
	switch {
	case f != f:
		i = 0
	case f >= math.MaxInt32:
		i = math.MaxInt32
	case f <= math.MinInt32:
		i = math.MinInt32
	default:
		i = int32(f)
	}
	return byte(i)
}
