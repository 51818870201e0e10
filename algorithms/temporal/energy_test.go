package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMS(t *testing.T) {
	e := NewEnergy()
	assert.InDelta(t, math.Sqrt(7.5), e.RMS([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 1.0, e.RMS([]float64{-1, 1, -1}), 1e-12)
	assert.Zero(t, e.RMS(nil))
}

func TestEnergy(t *testing.T) {
	e := NewEnergy()
	assert.Equal(t, 30.0, e.Compute([]float64{1, 2, 3, 4}))
	assert.Equal(t, math.Log(1e-10), e.LogEnergy(make([]float64, 8), 1e-10))
}

func TestSilenceDetector(t *testing.T) {
	sd := NewSilenceDetector(DefaultSilenceThresholdDB)

	assert.True(t, sd.IsSilent(nil))
	assert.True(t, sd.IsSilent(make([]float64, 64)))
	// RMS 1e-4 is -80 dBFS
	assert.True(t, sd.IsSilent([]float64{1e-4, -1e-4, 1e-4, -1e-4}))
	// RMS 0.1 is -20 dBFS
	assert.False(t, sd.IsSilent([]float64{0.1, -0.1, 0.1, -0.1}))
	assert.Equal(t, -60.0, sd.ThresholdDB())
}

func TestSilenceSegments(t *testing.T) {
	sd := NewSilenceDetector(DefaultSilenceThresholdDB)
	silent := []bool{true, true, false, true, false, false, true, true, true}

	assert.Equal(t, [][2]int{{0, 2}, {3, 4}, {6, 9}}, sd.Segments(silent, 1))
	assert.Equal(t, [][2]int{{0, 2}, {6, 9}}, sd.Segments(silent, 2))
	assert.Nil(t, sd.Segments(nil, 1))
	assert.InDelta(t, 6.0/9.0, sd.SilenceRatio(silent), 1e-12)
	assert.Zero(t, sd.SilenceRatio(nil))
}
