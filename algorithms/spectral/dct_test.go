package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDCTEmpty(t *testing.T) {
	out := ComputeDCT(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDCTConstantInput(t *testing.T) {
	const m = 8
	input := make([]float64, m)
	for i := range input {
		input[i] = 3.0
	}

	out := ComputeDCT(input)
	require.Len(t, out, m)
	assert.InDelta(t, math.Sqrt(math.Pi/(2*m))*m*3.0, out[0], 1e-12)
}

func TestDCTMatchesDirectSum(t *testing.T) {
	input := []float64{1.5, -2, 0.25, 4, -0.5}
	m := float64(len(input))

	out := ComputeDCT(input)
	require.Len(t, out, len(input))

	for k := range input {
		sum := 0.0
		for n, x := range input {
			sum += x * math.Cos(math.Pi*float64(k)*float64(2*n+1)/(4*m))
		}
		assert.InDelta(t, math.Sqrt(math.Pi/(2*m))*sum, out[k], 1e-12, "k=%d", k)
	}
}

func TestDCTLengthMismatch(t *testing.T) {
	d := NewDCT(4)
	assert.Equal(t, 4, d.Size())
	assert.Empty(t, d.Transform([]float64{1, 2, 3}))
}

func TestDCTDoesNotMutateInput(t *testing.T) {
	input := []float64{1, 2, 3}
	ComputeDCT(input)
	assert.Equal(t, []float64{1, 2, 3}, input)
}
