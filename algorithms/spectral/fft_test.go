package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFTEmptyFrame(t *testing.T) {
	out := NewFFT().Compute(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)

	assert.Empty(t, NewFFT().ComputeInverseReal(nil))
}

func TestFFTPreservesLength(t *testing.T) {
	f := NewFFT()
	for _, n := range []int{1, 2, 7, 12, 100, 441, 512} {
		frame := generateSine(3, n, n, 1.0)
		assert.Len(t, f.Compute(frame), n, "n=%d", n)
	}
}

func TestFFTNonPowerOfTwoBin(t *testing.T) {
	// 5 cycles over 100 samples puts all energy in bins 5 and 95
	n := 100
	frame := generateSine(5, n, n, 1.0)
	spectrum := NewFFT().Compute(frame)

	assert.InDelta(t, float64(n)/2, cmplx.Abs(spectrum[5]), 1e-8)
	assert.InDelta(t, float64(n)/2, cmplx.Abs(spectrum[95]), 1e-8)
	assert.InDelta(t, 0.0, cmplx.Abs(spectrum[4]), 1e-8)
}

func TestFFTRoundTrip(t *testing.T) {
	frame := []float64{0.5, -1, 2, 0.25, 3, -0.75, 1}
	f := NewFFT()

	back := f.ComputeInverseReal(f.Compute(frame))
	require.Len(t, back, len(frame))
	for i := range frame {
		assert.InDelta(t, frame[i], back[i], 1e-12)
	}
}

func TestFFTDCComponent(t *testing.T) {
	frame := []float64{1, 1, 1, 1, 1, 1}
	spectrum := NewFFT().Compute(frame)
	assert.InDelta(t, 6.0, real(spectrum[0]), 1e-12)
	assert.InDelta(t, 0.0, math.Abs(imag(spectrum[0])), 1e-12)
}
