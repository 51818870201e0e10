package spectral

import (
	"gonum.org/v1/gonum/floats"
)

// Band is a half-open range of spectrum bins [Start, End)
type Band struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DefaultContrastBands are the sub-bands used when none are configured
var DefaultContrastBands = []Band{{0, 2}, {2, 4}, {4, 7}}

// SpectralContrast computes the peak-to-valley difference per sub-band
type SpectralContrast struct {
	bands []Band
}

// NewSpectralContrast creates a contrast calculator over the given bands.
// A nil or empty band list selects DefaultContrastBands.
func NewSpectralContrast(bands []Band) *SpectralContrast {
	if len(bands) == 0 {
		bands = DefaultContrastBands
	}
	return &SpectralContrast{bands: append([]Band(nil), bands...)}
}

// Compute returns max-min of the magnitudes in each band.
// Bands are clamped to the spectrum; a band left empty yields 0.
func (sc *SpectralContrast) Compute(magnitudeSpectrum []float64) []float64 {
	contrast := make([]float64, len(sc.bands))

	for i, band := range sc.bands {
		start := max(band.Start, 0)
		end := min(band.End, len(magnitudeSpectrum))
		if start >= end {
			continue
		}

		bandSpectrum := magnitudeSpectrum[start:end]
		contrast[i] = floats.Max(bandSpectrum) - floats.Min(bandSpectrum)
	}

	return contrast
}

// Bands returns the configured sub-bands
func (sc *SpectralContrast) Bands() []Band {
	return append([]Band(nil), sc.bands...)
}
