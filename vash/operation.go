// =======================
// vash/operation.go
// =======================

package vash

import (
	"fmt"

	"github.com/pkg/errors"
)

// Operation names a node kind. The declaration order is part of every
// algorithm's compatibility contract.
type Operation int

const (
	OpRGB Operation = iota

	OpAbsolute
	OpAdd
	OpDivide
	OpExponentiate
	OpInvert
	OpModulus
	OpMultiply

	OpSinc
	OpSine
	OpSpiral
	OpSquircle

	OpConst
	OpEllipse
	OpFlower
	OpGradientLinear
	OpGradientRadial
	OpPolarTheta

	numOperations
)

// OpClass places an operation in the tree.
type OpClass int

const (
	ClassTop OpClass = iota
	ClassNode
	ClassLeaf
)

type opInfo struct {
	name  string
	arity int
	class OpClass
}

var opTable = [numOperations]opInfo{
	OpRGB:            {"RGB", 3, ClassTop},
	OpAbsolute:       {"ABSOLUTE", 1, ClassNode},
	OpAdd:            {"ADD", 2, ClassNode},
	OpDivide:         {"DIVIDE", 2, ClassNode},
	OpExponentiate:   {"EXPONENTIATE", 2, ClassNode},
	OpInvert:         {"INVERT", 1, ClassNode},
	OpModulus:        {"MODULUS", 2, ClassNode},
	OpMultiply:       {"MULTIPLY", 2, ClassNode},
	OpSinc:           {"SINC", 1, ClassNode},
	OpSine:           {"SINE", 1, ClassNode},
	OpSpiral:         {"SPIRAL", 1, ClassNode},
	OpSquircle:       {"SQUIRCLE", 2, ClassNode},
	OpConst:          {"CONST", 0, ClassLeaf},
	OpEllipse:        {"ELLIPSE", 0, ClassLeaf},
	OpFlower:         {"FLOWER", 0, ClassLeaf},
	OpGradientLinear: {"GRADIENT_LINEAR", 0, ClassLeaf},
	OpGradientRadial: {"GRADIENT_RADIAL", 0, ClassLeaf},
	OpPolarTheta:     {"POLAR_THETA", 0, ClassLeaf},
}

// Candidate sets in the order the weighted walk visits them.
var (
	topOps  = []Operation{OpRGB}
	nodeOps = []Operation{
		OpAbsolute, OpInvert, OpAdd, OpDivide, OpExponentiate, OpModulus,
		OpMultiply, OpSinc, OpSine, OpSpiral, OpSquircle,
	}
	leafOps = []Operation{
		OpConst, OpEllipse, OpFlower, OpGradientLinear, OpGradientRadial,
		OpPolarTheta,
	}
)

func (op Operation) valid() bool { return op >= 0 && op < numOperations }

func (op Operation) String() string {
	if !op.valid() {
		return fmt.Sprintf("Operation(%d)", int(op))
	}
	return opTable[op].name
}

// Arity is the number of child nodes the operation takes.
func (op Operation) Arity() int {
	if !op.valid() {
		return 0
	}
	return opTable[op].arity
}

// Class returns whether op is the top, an interior or a leaf operation.
func (op Operation) Class() OpClass {
	if !op.valid() {
		return ClassLeaf
	}
	return opTable[op].class
}

// ParseOperation maps a name as printed by String back to the operation.
func ParseOperation(name string) (Operation, error) {
	for op := Operation(0); op < numOperations; op++ {
		if opTable[op].name == name {
			return op, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown operation %q", name)
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, numOperations)
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}
