package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowType(t *testing.T) {
	tests := map[string]WindowType{
		"":         WindowRectangular,
		"none":     WindowRectangular,
		"Hann":     WindowHann,
		"hanning":  WindowHann,
		"hamming":  WindowHamming,
		"blackman": WindowBlackman,
		"bartlett": WindowBartlett,
	}
	for name, want := range tests {
		got, err := ParseWindowType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}

	_, err := ParseWindowType("kaiser")
	assert.Error(t, err)
}

func TestRectangularIsIdentity(t *testing.T) {
	w, err := NewWindow(WindowRectangular, 4)
	require.NoError(t, err)

	out, err := w.Apply([]float64{1, -2, 3, -4})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2, 3, -4}, out)
}

func TestHannTapersEdges(t *testing.T) {
	w, err := NewWindow(WindowHann, 9)
	require.NoError(t, err)
	require.Equal(t, 9, w.Size())

	c := w.Coefficients()
	assert.InDelta(t, 0.0, c[0], 1e-12)
	assert.InDelta(t, 0.0, c[8], 1e-12)
	assert.InDelta(t, 1.0, c[4], 1e-12)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	w, err := NewWindow(WindowHamming, 3)
	require.NoError(t, err)

	signal := []float64{1, 1, 1}
	_, err = w.Apply(signal)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, signal)
}

func TestWindowErrors(t *testing.T) {
	_, err := NewWindow(WindowHann, 0)
	assert.Error(t, err)

	_, err = NewWindow(WindowType("kaiser"), 8)
	assert.Error(t, err)

	w, err := NewWindow(WindowHann, 8)
	require.NoError(t, err)
	_, err = w.Apply([]float64{1, 2})
	assert.Error(t, err)
}
