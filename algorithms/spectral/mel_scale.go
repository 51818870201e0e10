package spectral

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MelScale provides mel frequency conversion and triangular filter banks
type MelScale struct{}

// NewMelScale creates a new mel scale converter
func NewMelScale() *MelScale {
	return &MelScale{}
}

// HzToMel converts frequency in Hz to mel scale
func (ms *MelScale) HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts mel scale to frequency in Hz
func (ms *MelScale) MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// BinPoints returns the numFilters+2 filter boundaries as FFT bin indices.
// The boundaries are evenly spaced in mel between 0 Hz and the Nyquist
// frequency and each is mapped to round(hz / (sampleRate/fftSize)).
func (ms *MelScale) BinPoints(numFilters, fftSize, sampleRate int) []int {
	if numFilters < 1 || fftSize < 2 || sampleRate < 1 {
		return nil
	}

	melPoints := make([]float64, numFilters+2)
	floats.Span(melPoints, ms.HzToMel(0), ms.HzToMel(float64(sampleRate)/2.0))

	binWidth := float64(sampleRate) / float64(fftSize)
	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		binPoints[i] = int(math.Round(ms.MelToHz(mel) / binWidth))
	}

	return binPoints
}

// CreateMelFilterBank returns numFilters triangular filters over fftSize/2 bins.
//
// Filter i rises linearly from bin b[i] to b[i+1] and falls back to zero at
// b[i+2]. When two adjacent boundaries round to the same bin the ramp between
// them has zero width; that ramp is skipped and contributes no weights. A
// filter whose falling ramp collapses therefore never reaches 1.0.
func (ms *MelScale) CreateMelFilterBank(numFilters, fftSize, sampleRate int) [][]float64 {
	binPoints := ms.BinPoints(numFilters, fftSize, sampleRate)
	if binPoints == nil {
		return nil
	}

	numBins := fftSize / 2
	filterBank := make([][]float64, numFilters)

	for i := range filterBank {
		filter := make([]float64, numBins)
		left, center, right := binPoints[i], binPoints[i+1], binPoints[i+2]

		// Rising edge
		if center > left {
			for f := max(left, 0); f < center && f < numBins; f++ {
				filter[f] = float64(f-left) / float64(center-left)
			}
		}

		// Falling edge
		if right > center {
			for f := max(center, 0); f < right && f < numBins; f++ {
				filter[f] = 1.0 - float64(f-center)/float64(right-center)
			}
		}

		filterBank[i] = filter
	}

	return filterBank
}

// ApplyFilterBank applies a filter bank to a power spectrum.
// Bins missing from either side are treated as zero.
func (ms *MelScale) ApplyFilterBank(powerSpectrum []float64, filterBank [][]float64) []float64 {
	melSpectrum := make([]float64, len(filterBank))

	for i, filter := range filterBank {
		n := min(len(filter), len(powerSpectrum))
		if n == 0 {
			continue
		}
		melSpectrum[i] = floats.Dot(filter[:n], powerSpectrum[:n])
	}

	return melSpectrum
}
