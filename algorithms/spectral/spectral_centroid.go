package spectral

import (
	"math"
)

// SpectralCentroid computes the amplitude-weighted mean bin of a spectrum
type SpectralCentroid struct{}

// NewSpectralCentroid creates a new spectral centroid calculator
func NewSpectralCentroid() *SpectralCentroid {
	return &SpectralCentroid{}
}

// Compute returns sum(i*|a[i]|) / sum(a[i]) in bin units.
// A spectrum without energy yields 0.
func (sc *SpectralCentroid) Compute(magnitudeSpectrum []float64) float64 {
	weighted := 0.0
	total := 0.0

	for i, mag := range magnitudeSpectrum {
		weighted += float64(i) * math.Abs(mag)
		total += mag
	}

	if total == 0 {
		return 0.0
	}
	return weighted / total
}

// ComputeHz returns the centroid in Hz for a spectrum of an N-point frame
func (sc *SpectralCentroid) ComputeHz(magnitudeSpectrum []float64, frameSize, sampleRate int) float64 {
	if frameSize <= 0 {
		return 0.0
	}
	return sc.Compute(magnitudeSpectrum) * float64(sampleRate) / float64(frameSize)
}
