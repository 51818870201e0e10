package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectralContrastDefaultBands(t *testing.T) {
	amp := []float64{1, 2, 4, 8, 10, 20, 30}
	contrast := NewSpectralContrast(nil).Compute(amp)
	assert.Equal(t, []float64{1.0, 4.0, 20.0}, contrast)
}

func TestSpectralContrastClampsBands(t *testing.T) {
	sc := NewSpectralContrast([]Band{{0, 3}, {2, 100}, {50, 60}, {-3, 1}})
	contrast := sc.Compute([]float64{5, 1, 3, 9})

	require.Len(t, contrast, 4)
	assert.Equal(t, 4.0, contrast[0])
	assert.Equal(t, 6.0, contrast[1])
	assert.Zero(t, contrast[2], "band past the spectrum")
	assert.Zero(t, contrast[3], "single bin has no contrast")
}

func TestSpectralCentroid(t *testing.T) {
	sc := NewSpectralCentroid()
	assert.InDelta(t, 2.0, sc.Compute([]float64{0, 0, 5, 0}), 1e-12)
	assert.InDelta(t, 1.5, sc.Compute([]float64{0, 1, 1, 0}), 1e-12)
	assert.Zero(t, sc.Compute([]float64{0, 0, 0}))
	assert.Zero(t, sc.Compute(nil))
	assert.InDelta(t, 2.0*44100/8, sc.ComputeHz([]float64{0, 0, 5, 0}, 8, 44100), 1e-9)
}

func TestSpectralFlatness(t *testing.T) {
	sf := NewSpectralFlatness()
	assert.InDelta(t, 1.0, sf.Compute([]float64{3, 3, 3, 3}), 1e-12)
	assert.Zero(t, sf.Compute([]float64{0, 0, 0}))
	assert.Zero(t, sf.Compute(nil))

	// A single zero bin drives the geometric mean to zero
	assert.Zero(t, sf.Compute([]float64{0, 1, 1}))

	tonal := sf.Compute([]float64{0.01, 0.01, 10, 0.01})
	assert.Less(t, tonal, 0.2)
}

func TestSpectralRolloff(t *testing.T) {
	sr := NewSpectralRolloffWithPoint(8, 0.5)

	// bins are 8/(2*3) Hz apart; half of the magnitude lies in bins 0..1
	got := sr.Compute([]float64{1, 1, 1, 1})
	assert.InDelta(t, 2.0*8.0/6.0, got, 1e-12)

	assert.Zero(t, NewSpectralRolloff(44100).Compute([]float64{1}))
}

func TestSpectralRolloffDefaultPoint(t *testing.T) {
	sr := NewSpectralRolloff(44100)
	amp := make([]float64, 101)
	amp[10] = 1.0

	// Removing the only non-zero bin is what crosses the threshold
	assert.InDelta(t, 10*44100.0/200.0, sr.Compute(amp), 1e-9)
}

func TestSpectralBandwidth(t *testing.T) {
	sb := NewSpectralBandwidth(8)

	// 4 bins of an 8-point frame at 8 Hz: frequencies 0,1,2,3 Hz
	assert.Zero(t, sb.Compute([]float64{0, 0, 1, 0}), "single line has no spread")

	// Two equal lines at 1 and 3 Hz around a 2 Hz centroid
	assert.InDelta(t, math.Sqrt(2.0), sb.Compute([]float64{0, 1, 0, 1}), 1e-12)
	assert.Zero(t, sb.Compute(nil))
}

func TestZeroCrossings(t *testing.T) {
	zcr := NewZeroCrossingRate(4)

	assert.Equal(t, 3, zcr.Count([]float64{1, -1, 1, -1}))
	assert.Equal(t, 0, zcr.Count([]float64{1, 2, 3}))
	assert.Equal(t, 1, zcr.Count([]float64{0, math.Copysign(0, -1)}))
	assert.Equal(t, 0, zcr.Count(nil))

	assert.InDelta(t, 3.0, zcr.Compute([]float64{1, -1, 1, -1}), 1e-12)
}

func TestZeroCrossingsSine(t *testing.T) {
	// 10 Hz for one second crosses zero about twice per cycle
	frame := generateSine(10, 1000, 1000, 1.0)
	count := NewZeroCrossingRate(1000).Count(frame)
	assert.InDelta(t, 20, count, 2)
}
