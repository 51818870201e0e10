package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
)

// SpectralFlatness measures how noise-like a spectrum is (Wiener entropy)
type SpectralFlatness struct{}

// NewSpectralFlatness creates a new spectral flatness calculator
func NewSpectralFlatness() *SpectralFlatness {
	return &SpectralFlatness{}
}

// Compute returns the geometric mean of the spectrum divided by its
// arithmetic mean. Values near 1 indicate noise, near 0 a tonal spectrum.
// An empty or silent spectrum yields 0.
func (sf *SpectralFlatness) Compute(magnitudeSpectrum []float64) float64 {
	arithmetic := common.Mean(magnitudeSpectrum)
	if arithmetic <= 0 {
		return 0.0
	}

	logSum := 0.0
	for _, mag := range magnitudeSpectrum {
		logSum += math.Log(mag)
	}
	geometric := math.Exp(logSum / float64(len(magnitudeSpectrum)))

	flatness := geometric / arithmetic
	if !common.IsFinite(flatness) {
		return 0.0
	}
	return flatness
}
