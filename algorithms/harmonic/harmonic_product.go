package harmonic

import (
	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
)

// DefaultHarmonics are the downsampling factors multiplied into the product
var DefaultHarmonics = []int{2, 3, 4}

// HarmonicProduct implements the Harmonic Product Spectrum F0 estimator
//
// References:
// - Schroeder, M.R. (1968). "Period histogram and product spectrum"
type HarmonicProduct struct {
	sampleRate    int
	harmonics     []int
	powerSpectrum *spectral.PowerSpectrum
}

// NewHarmonicProduct creates a harmonic product spectrum analyzer.
// A nil or empty harmonics list selects DefaultHarmonics.
func NewHarmonicProduct(sampleRate int, harmonics []int) *HarmonicProduct {
	if len(harmonics) == 0 {
		harmonics = DefaultHarmonics
	}
	return &HarmonicProduct{
		sampleRate:    sampleRate,
		harmonics:     append([]int(nil), harmonics...),
		powerSpectrum: spectral.NewPowerSpectrum(),
	}
}

// maxFrequency is the Nyquist frequency, used as the resampling extent
func (hp *HarmonicProduct) maxFrequency() int {
	return hp.sampleRate / 2
}

// ComputeHPS returns the harmonic product accumulator for a frame.
//
// The accumulator has one entry per power-spectrum bin and starts at 1.0,
// the multiplicative identity. For each harmonic h the power spectrum is
// folded into maxFrequency/h bins, each summing h consecutive power bins, and
// acc[i] is multiplied by folded[i/h]. Power bins past the spectrum count as
// zero, and an accumulator entry with no folded counterpart becomes zero.
func (hp *HarmonicProduct) ComputeHPS(frame []float64) []float64 {
	power := hp.powerSpectrum.Compute(frame)

	hps := make([]float64, len(power))
	for i := range hps {
		hps[i] = 1.0
	}

	for _, h := range hp.harmonics {
		if h < 1 {
			continue
		}

		resampled := hp.resample(power, h)
		for i := range hps {
			k := i / h
			if k < len(resampled) {
				hps[i] *= resampled[k]
			} else {
				hps[i] = 0.0
			}
		}
	}

	return hps
}

// resample folds the power spectrum by summing groups of h bins
func (hp *HarmonicProduct) resample(power []float64, h int) []float64 {
	resampled := make([]float64, max(hp.maxFrequency()/h, 0))

	for k := range resampled {
		for j := range h {
			idx := k*h + j
			if idx >= len(power) {
				break
			}
			resampled[k] += power[idx]
		}
	}

	return resampled
}

// PeakBin returns the accumulator index of the harmonic product maximum.
// Ties resolve to the lowest bin; an empty accumulator yields 0.
func (hp *HarmonicProduct) PeakBin(frame []float64) int {
	return max(common.ArgMax(hp.ComputeHPS(frame)), 0)
}

// EstimateF0 returns PeakBin scaled by sampleRate/maxFrequency.
// A sample rate below 2 Hz cannot be resolved and yields 0.
func (hp *HarmonicProduct) EstimateF0(frame []float64) float64 {
	maxFrequency := hp.maxFrequency()
	if maxFrequency <= 0 {
		return 0.0
	}

	return float64(hp.PeakBin(frame)) * float64(hp.sampleRate) / float64(maxFrequency)
}
