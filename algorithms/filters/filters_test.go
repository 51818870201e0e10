package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestPreEmphasis(t *testing.T) {
	pe, err := NewPreEmphasis(0.5)
	require.NoError(t, err)

	input := []float64{1, 2, 4, 8}
	assert.Equal(t, []float64{1, 1.5, 3, 6}, pe.Apply(input))
	assert.Equal(t, []float64{1, 2, 4, 8}, input, "input must not change")
	assert.Empty(t, pe.Apply(nil))
}

func TestPreEmphasisInvalid(t *testing.T) {
	for _, c := range []float64{-0.1, 1, 1.5} {
		_, err := NewPreEmphasis(c)
		assert.Error(t, err, "coefficient %g", c)
	}
}

func TestDCRemovalBlocksConstant(t *testing.T) {
	dc, err := NewDCRemoval(DefaultDCPole)
	require.NoError(t, err)

	signal := make([]float64, 5000)
	for i := range signal {
		signal[i] = 0.75
	}

	output := dc.Apply(signal)
	assert.InDelta(t, 0.75, output[0], 1e-12)
	assert.Less(t, floats.Max(output[4000:]), 1e-6)
}

func TestDCRemovalCutoff(t *testing.T) {
	dc, err := NewDCRemovalWithCutoff(44100, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, dc.CutoffFrequency(44100), 1e-9)

	_, err = NewDCRemoval(1)
	assert.Error(t, err)
	_, err = NewDCRemovalWithCutoff(0, 10)
	assert.Error(t, err)
}
