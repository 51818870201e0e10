package harmonic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, sampleRate, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return x
}

func TestHPSAccumulatorSeededWithIdentity(t *testing.T) {
	// An impulse has a flat unit power spectrum, so every folded bin is h
	impulse := make([]float64, 16)
	impulse[0] = 1.0

	hps := NewHarmonicProduct(16, nil).ComputeHPS(impulse)
	require.Len(t, hps, 8)

	want := []float64{24, 24, 24, 24, 24, 24, 0, 0}
	for i := range want {
		assert.InDelta(t, want[i], hps[i], 1e-9, "bin %d", i)
	}
}

func TestHPSSilenceIsUnvoiced(t *testing.T) {
	hp := NewHarmonicProduct(44100, nil)
	frame := make([]float64, 4096)

	for _, v := range hp.ComputeHPS(frame) {
		assert.Zero(t, v)
	}
	assert.Zero(t, hp.EstimateF0(frame))
}

func TestHPSHalfSecondFrameResolvesTone(t *testing.T) {
	// Half a second at 44.1 kHz makes sampleRate/maxFrequency the bin width
	const sampleRate = 44100
	frame := sine(440, sampleRate, sampleRate/2)

	hp := NewHarmonicProduct(sampleRate, nil)
	assert.Equal(t, 220, hp.PeakBin(frame))
	assert.InDelta(t, 440.0, hp.EstimateF0(frame), 1e-9)
}

func TestHPSScalesPeakByNyquist(t *testing.T) {
	const sampleRate = 8000
	frame := sine(500, sampleRate, sampleRate)

	hp := NewHarmonicProduct(sampleRate, nil)
	peak := hp.PeakBin(frame)
	require.Equal(t, 500, peak)
	assert.Equal(t, float64(peak)*sampleRate/(sampleRate/2), hp.EstimateF0(frame))
}

func TestHPSDegenerateInput(t *testing.T) {
	hp := NewHarmonicProduct(44100, nil)
	assert.Empty(t, hp.ComputeHPS(nil))
	assert.Zero(t, hp.EstimateF0(nil))
	assert.Zero(t, hp.EstimateF0([]float64{1}))

	assert.Zero(t, NewHarmonicProduct(1, nil).EstimateF0(sine(100, 1, 64)))
}

func TestHPSShortFrameLongRateIsBounded(t *testing.T) {
	// Folding extents far beyond the spectrum must not index out of range
	hp := NewHarmonicProduct(96000, []int{2, 3, 4, 5})
	assert.NotPanics(t, func() { hp.EstimateF0([]float64{0.1, -0.3, 0.7, 0.2, -0.9}) })
}
