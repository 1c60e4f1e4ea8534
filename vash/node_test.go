package vash

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConst(t *testing.T, v float64) *Const {
	t.Helper()
	c, err := NewConst(v)
	require.NoError(t, err)
	return c
}

func computeNode(t *testing.T, n Node, w, h int) (*Plane, *ImageParameters) {
	t.Helper()
	ip, err := NewImageParameters(w, h)
	require.NoError(t, err)
	return n.Compute(ip), ip
}

func assertUniform(t *testing.T, want float32, p *Plane) {
	t.Helper()
	for i, v := range p.Data {
		if !assert.InDelta(t, want, v, 1e-6, "pixel %d", i) {
			return
		}
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want float32
	}{
		{"const", mustConst(t, 0.5), 0.5},
		{"absolute", NewAbsolute(mustConst(t, -0.5)), 0.5},
		{"invert", NewInvert(mustConst(t, 0.25)), -0.25},
		{"add clamps", NewAdd(mustConst(t, 0.75), mustConst(t, 0.75)), 1},
		{"add", NewAdd(mustConst(t, 0.25), mustConst(t, -0.5)), -0.25},
		{"multiply", NewMultiply(mustConst(t, -0.5), mustConst(t, 0.5)), -0.25},
		{"divide", NewDivide(mustConst(t, 0.5), mustConst(t, -1)), -0.5},
		{"divide by zero", NewDivide(mustConst(t, 0.5), mustConst(t, 0)), 1},
		{"divide clamps", NewDivide(mustConst(t, 0.5), mustConst(t, 0.25)), 1},
		{"modulus", NewModulus(mustConst(t, 0.75), mustConst(t, 0.5)), 0.25},
		{"exponentiate", NewExponentiate(mustConst(t, 0.5), mustConst(t, 1)), float32(0.5 * 2 / math.Pi)},
		{"exponentiate negative", NewExponentiate(mustConst(t, -0.5), mustConst(t, 1)), float32(-0.5 * 2 / math.Pi)},
		{"exponentiate zero", NewExponentiate(mustConst(t, 0), mustConst(t, -1)), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ip := computeNode(t, tc.node, 6, 5)
			assertUniform(t, tc.want, p)
			stats := ip.Stats()
			assert.Equal(t, stats.Gets-1, stats.Puts, "child planes go back to the pool")
		})
	}
}

func TestModulusByZeroIsNaN(t *testing.T) {
	p, _ := computeNode(t, NewModulus(mustConst(t, 0.5), mustConst(t, 0)), 4, 4)
	for _, v := range p.Data {
		assert.True(t, v != v)
	}
}

func TestTrig(t *testing.T) {
	sine, err := NewSine(0, math.Pi/2, mustConst(t, 0.3))
	require.NoError(t, err)
	p, _ := computeNode(t, sine, 4, 4)
	assertUniform(t, 1, p)

	sinc, err := NewSinc(0, 0, mustConst(t, 0.3))
	require.NoError(t, err)
	p, _ = computeNode(t, sinc, 4, 4)
	assertUniform(t, 1, p)

	_, err = NewSine(4, 0, mustConst(t, 0))
	assert.Error(t, err)
}

func TestSquircleZeroRadius(t *testing.T) {
	sq, err := NewSquircle(0, 0, 0, 2, mustConst(t, 0), mustConst(t, 0))
	require.NoError(t, err)
	p, _ := computeNode(t, sq, 8, 8)
	assertUniform(t, 1, p)
}

func TestSpiralRange(t *testing.T) {
	sp, err := NewSpiral(0.1, -0.2, 3, 0.5, mustConst(t, 0.9))
	require.NoError(t, err)
	p, _ := computeNode(t, sp, 16, 16)
	for _, v := range p.Data {
		assert.True(t, v >= -1 && v <= 1, "%v", v)
	}
}

func TestShapes(t *testing.T) {
	flower, err := NewFlower(0, 0, 45, 2.5, 1, 5)
	require.NoError(t, err)
	p, _ := computeNode(t, flower, 8, 8)
	assertUniform(t, 1, p)

	_, err = NewFlower(0, 0, 0, 1, 0.5, 12)
	assert.Error(t, err)

	ellipse, err := NewEllipse(0, 0, 0, 0, 1)
	require.NoError(t, err)
	p, _ = computeNode(t, ellipse, 16, 16)
	assert.Equal(t, float32(-1), p.At(0, 0))
	assert.Equal(t, float32(-1), p.At(15, 15))

	radial, err := NewRadialGradient(0, 0, 0.8, 0.8, 0)
	require.NoError(t, err)
	p, _ = computeNode(t, radial, 16, 16)
	assert.Greater(t, p.At(8, 8), p.At(0, 0))

	polar, err := NewPolarTheta(0, 0, 0.5)
	require.NoError(t, err)
	p, _ = computeNode(t, polar, 16, 16)
	for _, v := range p.Data {
		assert.True(t, v >= -1 && v <= 1, "%v", v)
	}
}

func TestLinearGradientEnds(t *testing.T) {
	g := NewLinearGradient(-0.5, 0, 0.5, 0)
	p, _ := computeNode(t, g, 8, 8)
	for j := 0; j < 8; j++ {
		assert.Equal(t, float32(1), p.At(0, j))
		assert.Equal(t, float32(-1), p.At(7, j))
		assert.InDelta(t, -0.25, p.At(4, j), 1e-5)
	}
}

func TestLegacyLinearGradientHorizontal(t *testing.T) {
	g := NewLegacyLinearGradient(-0.5, 0, 0.5, 0)
	p, _ := computeNode(t, g, 8, 8)
	for j := 0; j < 8; j++ {
		assert.Equal(t, float32(-1), p.At(0, j))
		assert.Equal(t, float32(1), p.At(7, j))
		assert.InDelta(t, 0.25, p.At(4, j), 1e-5)
	}
}

func TestLegacyLinearGradientVertical(t *testing.T) {
	for _, size := range [][2]int{{8, 8}, {16, 8}, {8, 16}} {
		g := NewLegacyLinearGradient(0, -0.5, 0, 0.5)
		p, ip := computeNode(t, g, size[0], size[1])

		// A vertical segment varies by row only.
		for j := 0; j < p.H; j++ {
			for i := 1; i < p.W; i++ {
				require.Equal(t, p.At(0, j), p.At(i, j), "%v row %d", size, j)
			}
		}
		assert.NotEqual(t, p.At(0, 0), p.At(0, p.H-1), "%v", size)
		stats := ip.Stats()
		assert.Equal(t, stats.Gets-1, stats.Puts, "%v", size)
	}
}

func TestCloneIsDeep(t *testing.T) {
	sine, err := NewSine(1, 0, NewAdd(mustConst(t, 0.5), mustConst(t, 0.25)))
	require.NoError(t, err)

	clone := sine.Clone()
	clone.Values()[0].(*Bounded).V = 3
	clone.Children()[0].Children()[0].Values()[0].(*Bounded).V = -1

	assert.Equal(t, 1.0, sine.freq.V)
	assert.Equal(t, 0.5, sine.kids[0].Children()[0].(*Const).v.V)
	assert.NotSame(t, sine.kids[0], clone.Children()[0])
}

func TestSetChildTwicePanics(t *testing.T) {
	add := &Add{branch: newBranch(2)}
	add.setChild(0, mustConst(t, 0))
	assert.Panics(t, func() { add.setChild(0, mustConst(t, 0)) })
	assert.Panics(t, func() { mustConst(t, 0).setChild(0, add) })
	assert.Panics(t, func() { NewRGB(nil, nil, nil).Compute(nil) })
}

func TestChannelByte(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{-1, 0},
		{0, 127},
		{1, 255},
		{1.5, 62},
		{-2, 128},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 255},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, channelByte(tc.in), "%v", tc.in)
	}
}

func TestRenderPacksBGRBottomUp(t *testing.T) {
	// Red is 2Y: bright at the top of the coordinate plane.
	ip, err := NewImageParameters(4, 4)
	require.NoError(t, err)
	root := NewRGB(NewLinearGradient(0, 0.5, 0, -0.5), mustConst(t, 0), mustConst(t, 1))
	pix := root.Render(ip)
	require.Len(t, pix, 4*4*3)

	// First output row is the last coordinate row, where Y is lowest.
	assert.Equal(t, byte(255), pix[0], "blue")
	assert.Equal(t, byte(127), pix[1], "green")
	assert.Equal(t, byte(0), pix[2], "red")
	last := len(pix) - 3
	assert.Equal(t, byte(255), pix[last+2], "red")
}

func TestOperationTable(t *testing.T) {
	assert.Len(t, Operations(), int(numOperations))
	for _, op := range Operations() {
		parsed, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
	assert.Equal(t, 1, OpSpiral.Arity())
	assert.Equal(t, 2, OpSquircle.Arity())
	assert.Equal(t, ClassNode, OpSquircle.Class())
	assert.Equal(t, "Operation(99)", Operation(99).String())

	_, err := ParseOperation("NOPE")
	assert.Error(t, err)
}

func TestDumpIndents(t *testing.T) {
	c := mustConst(t, 0.5)
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, NewInvert(c), 1))
	assert.Equal(t, "  INVERT()\n    CONST(B[0.50])\n", buf.String())
}
