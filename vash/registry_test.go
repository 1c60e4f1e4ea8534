package vash

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownAlgorithms(t *testing.T) {
	known := KnownAlgorithms()
	require.Len(t, known, 3)
	assert.Equal(t, AlgorithmInfo{Name: Algorithm11}, known[0])
	assert.Equal(t, AlgorithmInfo{Name: Algorithm1, Deprecated: true}, known[1])
	assert.Equal(t, AlgorithmInfo{Name: Algorithm1Fast, Deprecated: true}, known[2])
}

func TestRegistryTables(t *testing.T) {
	v11, err := lookupAlgorithm(Algorithm11)
	require.NoError(t, err)
	assert.Equal(t, seedHKDF, v11.seed)
	assert.Equal(t, gradientRotated, v11.gradient)
	assert.True(t, v11.exclusion)
	assert.Equal(t, OpParams{Ratio: 2.0, Channels: 1.8}, v11.ops[OpSquircle])
	assert.Equal(t, OpParams{Ratio: 0.2, Channels: 0.9}, v11.ops[OpAbsolute])

	v1, err := lookupAlgorithm(Algorithm1)
	require.NoError(t, err)
	fast, err := lookupAlgorithm(Algorithm1Fast)
	require.NoError(t, err)
	assert.Equal(t, v1.ops, fast.ops)
	assert.Equal(t, seedTwister, v1.seed)
	assert.Equal(t, seedLCG, fast.seed)
	assert.Equal(t, 3.0, v1.ops[OpFlower].Channels)
	assert.False(t, v1.exclusion)
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("1.1")
	require.NoError(t, err)
	assert.Equal(t, Algorithm11, algo)

	_, err = ParseAlgorithm("1.2")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestNormalizeSalt(t *testing.T) {
	salt, err := NormalizeSalt(Algorithm11, []byte("short"))
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)
	assert.Equal(t, []byte("short"), salt[:5])
	assert.Equal(t, byte(0), salt[SaltSize-1])

	long := []byte(strings.Repeat("x", SaltSize*2))
	salt, err = NormalizeSalt(Algorithm1, long)
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	_, err = NormalizeSalt("bogus", nil)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

const validEntry = `
  - name: test
    seed: lcg
    gradient: legacy
    min_depth: 1
    max_depth: 3
    operations:
      RGB: {ratio: 1}
      ABSOLUTE: {ratio: 1}
      ADD: {ratio: 1}
      DIVIDE: {ratio: 1}
      EXPONENTIATE: {ratio: 1}
      INVERT: {ratio: 1}
      MODULUS: {ratio: 1}
      MULTIPLY: {ratio: 1}
      SINC: {ratio: 1}
      SINE: {ratio: 1}
      SPIRAL: {ratio: 1}
      SQUIRCLE: {ratio: 1}
      CONST: {ratio: 1}
      FLOWER: {ratio: 1}
      GRADIENT_RADIAL: {ratio: 1}
      ELLIPSE: {ratio: 1}
      GRADIENT_LINEAR: {ratio: 1}
      POLAR_THETA: {ratio: 1, channels: 2.5}
`

func TestParseRegistry(t *testing.T) {
	specs, err := parseRegistry([]byte("algorithms:" + validEntry))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, 2.5, specs[0].ops[OpPolarTheta].Channels)
	assert.Equal(t, 3.0, specs[0].ops[OpConst].Channels)

	bad := map[string]string{
		"duplicate":        "algorithms:" + validEntry + validEntry,
		"unknown field":    "algorithms:" + strings.Replace(validEntry, "seed: lcg", "seed: lcg\n    colour: red", 1),
		"unknown seed":     "algorithms:" + strings.Replace(validEntry, "seed: lcg", "seed: xorshift", 1),
		"unknown op":       "algorithms:" + strings.Replace(validEntry, "CONST:", "CONSTANT:", 1),
		"missing op":       "algorithms:" + strings.Replace(validEntry, "      CONST: {ratio: 1}\n", "", 1),
		"bad depth":        "algorithms:" + strings.Replace(validEntry, "max_depth: 3", "max_depth: 0", 1),
		"bad channels":     "algorithms:" + strings.Replace(validEntry, "channels: 2.5", "channels: 4", 1),
		"negative ratio":   "algorithms:" + strings.Replace(validEntry, "ADD: {ratio: 1}", "ADD: {ratio: -1}", 1),
		"unknown gradient": "algorithms:" + strings.Replace(validEntry, "gradient: legacy", "gradient: wavy", 1),
	}
	for name, doc := range bad {
		_, err := parseRegistry([]byte(doc))
		assert.Error(t, err, name)
	}

	assert.Panics(t, func() { mustLoadRegistry([]byte("algorithms: [")) })
}
