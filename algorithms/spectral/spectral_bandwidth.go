package spectral

import (
	"math"
)

// SpectralBandwidth measures the spread of a spectrum around its centroid
type SpectralBandwidth struct {
	sampleRate int
	order      float64
}

// NewSpectralBandwidth creates a second-order bandwidth calculator
func NewSpectralBandwidth(sampleRate int) *SpectralBandwidth {
	return NewSpectralBandwidthWithOrder(sampleRate, 2.0)
}

// NewSpectralBandwidthWithOrder creates a bandwidth calculator of order p
func NewSpectralBandwidthWithOrder(sampleRate int, order float64) *SpectralBandwidth {
	if order <= 0 {
		order = 2.0
	}
	return &SpectralBandwidth{
		sampleRate: sampleRate,
		order:      order,
	}
}

// Compute returns (sum a[i]*|f[i]-c|^p)^(1/p) where f[i] is the frequency of
// bin i of the one-sided spectrum of a 2*len-point frame and c is the
// amplitude-weighted centroid in Hz.
func (sb *SpectralBandwidth) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	frameSize := 2 * len(magnitudeSpectrum)
	centroid := NewSpectralCentroid().ComputeHz(magnitudeSpectrum, frameSize, sb.sampleRate)

	sum := 0.0
	for i, mag := range magnitudeSpectrum {
		deviation := math.Abs(BinFrequency(i, frameSize, sb.sampleRate) - centroid)
		sum += mag * math.Pow(deviation, sb.order)
	}

	if sum <= 0 {
		return 0.0
	}
	return math.Pow(sum, 1.0/sb.order)
}
