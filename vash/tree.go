// =======================
// vash/tree.go
// =======================

package vash

import (
	"fmt"
	"io"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TreeParameters couples a Seed with the frozen generation table of its
// algorithm.
type TreeParameters struct {
	seed *Seed
	spec algorithmSpec
}

// NewTreeParameters digests salt and data under algo. See NewSeed.
func NewTreeParameters(algo Algorithm, salt []byte, data io.Reader) (*TreeParameters, error) {
	spec, err := lookupAlgorithm(algo)
	if err != nil {
		return nil, err
	}
	seed, err := NewSeed(algo, salt, data)
	if err != nil {
		return nil, err
	}
	return &TreeParameters{seed: seed, spec: spec}, nil
}

func (tp *TreeParameters) Algorithm() Algorithm { return tp.spec.name }
func (tp *TreeParameters) Seed() *Seed          { return tp.seed }
func (tp *TreeParameters) MinDepth() int        { return tp.spec.minDepth }
func (tp *TreeParameters) MaxDepth() int        { return tp.spec.maxDepth }

// OpParams returns the weight and channel expectation of op.
func (tp *TreeParameters) OpParams(op Operation) OpParams {
	if !op.valid() {
		return OpParams{}
	}
	return tp.spec.ops[op]
}

// exclusion marks the operations a channel subtree may not use.
type exclusion [numOperations]bool

type builder struct {
	src  Source
	spec *algorithmSpec
}

// total sums the non-excluded ratios of ops in walk order.
func (b *builder) total(ops []Operation, ex *exclusion) float64 {
	sum := 0.0
	for _, op := range ops {
		if ex != nil && ex[op] {
			continue
		}
		sum += b.spec.ops[op].Ratio
	}
	return sum
}

func (b *builder) selectOp(level int, ex *exclusion) Operation {
	var sets [][]Operation
	switch {
	case level == 0:
		sets = [][]Operation{topOps}
	case level <= b.spec.minDepth:
		sets = [][]Operation{nodeOps}
	case level >= b.spec.maxDepth:
		sets = [][]Operation{leafOps}
	default:
		sets = [][]Operation{nodeOps, leafOps}
	}

	// The combined set is weighted by the sum of per-set totals.
	total := 0.0
	for _, set := range sets {
		total += b.total(set, ex)
	}

	u := b.src.NextDouble() * total
	pos := 0.0
	for _, set := range sets {
		for _, op := range set {
			if ex != nil && ex[op] {
				continue
			}
			pos += b.spec.ops[op].Ratio
			if pos > u {
				return op
			}
		}
	}
	panic(fmt.Sprintf("vash: weighted walk overflowed at level %d", level))
}

func (b *builder) buildNode(level int, ex *exclusion) (Node, error) {
	node, err := newNode(b.selectOp(level, ex), b.src, b.spec.gradient)
	if err != nil {
		return nil, err
	}
	for i := 0; i < node.Op().Arity(); i++ {
		child, err := b.buildNode(level+1, ex)
		if err != nil {
			return nil, err
		}
		node.setChild(i, child)
	}
	return node, nil
}

func (b *builder) buildRoot() (*RGB, error) {
	if !b.spec.exclusion {
		node, err := b.buildNode(0, nil)
		if err != nil {
			return nil, err
		}
		return asRoot(node)
	}

	node, err := newNode(b.selectOp(0, nil), b.src, b.spec.gradient)
	if err != nil {
		return nil, err
	}
	root, err := asRoot(node)
	if err != nil {
		return nil, err
	}

	var channels [3]exclusion
	for _, set := range [][]Operation{nodeOps, leafOps} {
		for _, op := range set {
			count := ExclusionCount(b.src, b.spec.ops[op].Channels)
			mask, err := BuildMask(b.src, count)
			if err != nil {
				return nil, err
			}
			for ch, excluded := range mask {
				channels[ch][op] = excluded
			}
		}
	}

	for ch := range channels {
		child, err := b.buildNode(1, &channels[ch])
		if err != nil {
			return nil, err
		}
		root.setChild(ch, child)
	}
	return root, nil
}

func asRoot(n Node) (*RGB, error) {
	root, ok := n.(*RGB)
	if !ok {
		return nil, errors.Errorf("tree root is %v, not RGB", n.Op())
	}
	return root, nil
}

// ExclusionCount draws how many colour channels an operation is kept out
// of, given the expected number of channels it appears in. Integral inputs
// draw nothing; fractional ones draw one double and lean towards the more
// inclusive count as the fraction grows.
func ExclusionCount(src Source, channels float64) int {
	switch {
	case channels <= 0:
		return 3
	case channels < 1:
		if src.NextDouble() > channels {
			return 3
		}
		return 2
	case channels == 1:
		return 2
	case channels < 2:
		if src.NextDouble() > channels-1 {
			return 2
		}
		return 1
	case channels == 2:
		return 1
	case channels < 3:
		if src.NextDouble() > channels-2 {
			return 1
		}
		return 0
	}
	return 0
}

// BuildMask picks which channels are excluded, true meaning excluded. A
// count of 1 or 2 draws one int in [0,3) naming the single excluded or
// single included channel.
func BuildMask(src Source, count int) ([3]bool, error) {
	switch count {
	case 0:
		return [3]bool{}, nil
	case 3:
		return [3]bool{true, true, true}, nil
	case 1, 2:
		ch, err := src.NextInt(3)
		if err != nil {
			return [3]bool{}, err
		}
		if ch < 0 || ch > 2 {
			return [3]bool{}, errors.Wrapf(ErrInvalidArgument, "channel draw %d outside [0,3)", ch)
		}
		var mask [3]bool
		if count == 1 {
			mask[ch] = true
		} else {
			mask = [3]bool{true, true, true}
			mask[ch] = false
		}
		return mask, nil
	}
	return [3]bool{}, errors.Wrapf(ErrInvalidArgument, "exclusion count %d outside [0,3]", count)
}

// Tree is a generated expression tree plus the resolution it renders at.
type Tree struct {
	params *TreeParameters
	root   *RGB
	values []Value
	ip     *ImageParameters
	log    logrus.FieldLogger
}

// TreeStats summarises a generated tree.
type TreeStats struct {
	Nodes       int
	Depth       int
	Values      int
	EntropyUsed int
}

// NewTree runs the weighted walk over tp's seed. Any error aborts the
// build; there are no partial trees.
func NewTree(tp *TreeParameters) (*Tree, error) {
	b := &builder{src: tp.seed, spec: &tp.spec}
	root, err := b.buildRoot()
	if err != nil {
		return nil, errors.Wrap(err, "building tree")
	}
	return &Tree{
		params: tp,
		root:   root,
		values: accumulateValues(root, nil),
		log:    discardLogger(),
	}, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger routes render diagnostics to log. A nil log silences them.
func (t *Tree) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		log = discardLogger()
	}
	t.log = log
}

func (t *Tree) Params() *TreeParameters { return t.params }

// Root returns the colour node at the top of the tree.
func (t *Tree) Root() *RGB { return t.root }

// Values lists every parameter in the tree, depth first.
func (t *Tree) Values() []Value {
	out := make([]Value, len(t.values))
	copy(out, t.values)
	return out
}

func (t *Tree) Stats() TreeStats {
	nodes, depth := countNodes(t.root)
	return TreeStats{
		Nodes:       nodes,
		Depth:       depth,
		Values:      len(t.values),
		EntropyUsed: t.params.seed.EntropyUsed(),
	}
}

// Dump writes the tree, one indented node per line.
func (t *Tree) Dump(w io.Writer) error {
	return dump(w, t.root, 0)
}

// SetGenerationParameters selects the resolution for later renders.
func (t *Tree) SetGenerationParameters(ip *ImageParameters) {
	t.ip = ip
}

// GenerateCurrentFrame renders the tree into a packed B,G,R buffer of
// w*h*3 bytes.
func (t *Tree) GenerateCurrentFrame() ([]byte, error) {
	if t.ip == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "SetGenerationParameters must be called before rendering")
	}
	pix := t.root.Render(t.ip)

	stats := t.ip.Stats()
	t.log.WithFields(logrus.Fields{
		"algorithm": t.params.Algorithm(),
		"width":     t.ip.Width(),
		"height":    t.ip.Height(),
		"planes":    stats.Gets,
		"cached":    stats.Cached,
	}).Debugf("rendered %s, plane cache holds %s",
		humanize.Bytes(uint64(len(pix))), humanize.Bytes(uint64(stats.CachedBytes)))
	return pix, nil
}
