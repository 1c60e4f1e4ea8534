package vash

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateGolden = flag.Bool("update", false, "rewrite testdata/render.golden from the current renderer")

const renderGoldenPath = "testdata/render.golden"

func planeDigest(p *Plane) string {
	h := sha256.New()
	var buf [4]byte
	for _, v := range p.Data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// The petal edges of a flower are where an unrounded product shows up first,
// so these digests change if a multiply is fused into the following subtract.
func TestFlowerPlaneDigest(t *testing.T) {
	cases := []struct {
		x, y, angle, size, ratio float64
		points                   int
		fringe                   int
		digest                   string
	}{
		{-0.176, -0.349, 234.3, 0.645, 0.505, 6, 34, "e8d72214ecf4a9dfda60a590d45da24ce16858d4b5415a1a6ce1d92ad197f961"},
		{-0.319, 0.082, 230.0, 1.245, 0.516, 2, 64, "eea1db4607c1e88037c183a845c309493227632ceca1a47b5b9c068412fa5f88"},
		{0.083, 0.41, 77.3, 0.672, 0.405, 4, 27, "190edd9f48fd43af9b7ff86c5007876e57bfdc42919f1d405532e09d85cddd3c"},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("%v/%v/%d", tc.angle, tc.size, tc.points)
		t.Run(name, func(t *testing.T) {
			f, err := NewFlower(tc.x, tc.y, tc.angle, tc.size, tc.ratio, tc.points)
			require.NoError(t, err)
			p, _ := computeNode(t, f, 32, 32)

			fringe := 0
			for _, v := range p.Data {
				if v != 1 && v != -1 {
					fringe++
				}
			}
			assert.Equal(t, tc.fringe, fringe)
			assert.Equal(t, tc.digest, planeDigest(p))
		})
	}
}

type goldenCase struct {
	algo Algorithm
	data string
	w, h int
}

func (c goldenCase) key() string {
	return fmt.Sprintf("%s %q %dx%d", c.algo, c.data, c.w, c.h)
}

func goldenCases() []goldenCase {
	var cases []goldenCase
	for _, info := range KnownAlgorithms() {
		cases = append(cases,
			goldenCase{info.Name, "foo", 64, 32},
			goldenCase{info.Name, "Vash", 128, 128},
		)
	}
	return cases
}

func readRenderGolden(t *testing.T) map[string]string {
	t.Helper()
	fd, err := os.Open(renderGoldenPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer fd.Close()

	golden := make(map[string]string)
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndexByte(line, ' ')
		require.True(t, idx > 0, "malformed golden line %q", line)
		golden[line[:idx]] = line[idx+1:]
	}
	require.NoError(t, scanner.Err())
	return golden
}

func writeRenderGolden(t *testing.T, cases []goldenCase, got map[string]string) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("# sha256 of the BGR pixel buffer, regenerate with: go test ./vash -run TestRenderGolden -update\n")
	for _, c := range cases {
		fmt.Fprintf(&sb, "%s %s\n", c.key(), got[c.key()])
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(renderGoldenPath), 0755))
	require.NoError(t, os.WriteFile(renderGoldenPath, []byte(sb.String()), 0644))
}

// TestRenderGolden pins whole renders across revisions and platforms.
func TestRenderGolden(t *testing.T) {
	cases := goldenCases()
	got := make(map[string]string, len(cases))
	for _, c := range cases {
		pix, _, err := Render(c.algo, nil, strings.NewReader(c.data), c.w, c.h)
		require.NoError(t, err, c.key())
		sum := sha256.Sum256(pix)
		got[c.key()] = hex.EncodeToString(sum[:])
	}

	if *updateGolden {
		writeRenderGolden(t, cases, got)
		return
	}

	golden := readRenderGolden(t)
	if golden == nil {
		t.Skipf("%s is missing; record it with -update", renderGoldenPath)
	}
	for _, c := range cases {
		want, ok := golden[c.key()]
		if assert.True(t, ok, "no golden entry for %s", c.key()) {
			assert.Equal(t, want, got[c.key()], c.key())
		}
	}
}

func walkOps(n Node, visit func(Operation)) {
	visit(n.Op())
	for _, child := range n.Children() {
		walkOps(child, visit)
	}
}

// replayExclusion redraws the per-channel exclusion table the builder takes
// right after picking the root.
func replayExclusion(t *testing.T, tp *TreeParameters) [3]exclusion {
	t.Helper()
	b := &builder{src: tp.seed, spec: &tp.spec}
	require.Equal(t, OpRGB, b.selectOp(0, nil))

	var channels [3]exclusion
	for _, set := range [][]Operation{nodeOps, leafOps} {
		for _, op := range set {
			count := ExclusionCount(b.src, b.spec.ops[op].Channels)
			mask, err := BuildMask(b.src, count)
			require.NoError(t, err)
			for ch, excluded := range mask {
				channels[ch][op] = excluded
			}
		}
	}
	return channels
}

func TestTreeChannelsAvoidExcludedOps(t *testing.T) {
	partial := 0
	for _, data := range []string{"foo", "Vash", "channels", "exclusion", "0", "hello world"} {
		built, err := NewTreeParameters(Algorithm11, nil, strings.NewReader(data))
		require.NoError(t, err)
		tree, err := NewTree(built)
		require.NoError(t, err)

		replay, err := NewTreeParameters(Algorithm11, nil, strings.NewReader(data))
		require.NoError(t, err)
		channels := replayExclusion(t, replay)

		for ch, sub := range tree.Root().Children() {
			walkOps(sub, func(op Operation) {
				assert.False(t, channels[ch][op], "%q: channel %d uses excluded %v", data, ch, op)
			})
		}
		for _, set := range [][]Operation{nodeOps, leafOps} {
			for _, op := range set {
				if channels[0][op] != channels[1][op] || channels[1][op] != channels[2][op] {
					partial++
				}
			}
		}
	}
	// Fractional channel counts must leave some operation in only part of
	// the channels, or the check above proves nothing.
	assert.Positive(t, partial)
}
