// Package features exposes per-frame spectral descriptors and pitch
// estimates as plain functions over in-memory frames, plus a batch
// Extractor that frames whole signals and processes them concurrently.
//
// Degenerate input never panics: empty frames give empty results and an
// undetected pitch is reported as 0.
package features

import (
	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
	"github.com/RyanBlaney/sonido-frames/algorithms/stats"
	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/algorithms/tonal"
)

// AmplitudeSpectrum returns |DFT(frame)| over the first len(frame)/2 bins
func AmplitudeSpectrum(frame []float64) []float64 {
	return spectral.NewPowerSpectrum().Amplitude(frame)
}

// PowerSpectrum returns the squared amplitude spectrum
func PowerSpectrum(frame []float64) []float64 {
	return spectral.NewPowerSpectrum().Compute(frame)
}

// Autocorrelate returns the raw autocorrelation of frame for lags [0, windowSize)
func Autocorrelate(frame []float64, windowSize int) []float64 {
	return stats.NewAutoCorrelation(windowSize).Compute(frame)
}

// MelFilterBank returns numFilters triangular mel filters over fftSize/2 bins.
// Invalid arguments yield nil.
func MelFilterBank(numFilters, fftSize, sampleRate int) [][]float64 {
	return spectral.NewMelScale().CreateMelFilterBank(numFilters, fftSize, sampleRate)
}

// MFCC computes min(numCepstrals, 40) coefficients with the default
// 512-point, 44.1 kHz, 40-filter configuration
func MFCC(frame []float64, numCepstrals int) []float64 {
	params := spectral.DefaultMFCCParams()
	params.NumCoefficients = numCepstrals
	return MFCCWithParams(frame, params)
}

// MFCCWithParams computes MFCCs with an explicit configuration.
// Invalid parameters yield an empty result.
func MFCCWithParams(frame []float64, params spectral.MFCCParams) []float64 {
	m, err := spectral.NewMFCCWithParams(params)
	if err != nil {
		return []float64{}
	}
	return m.Compute(frame)
}

// ExtractPitch estimates the pitch of frame with the autocorrelation method
func ExtractPitch(frame []float64, sampleRate int) float64 {
	return ExtractPitchWith(frame, sampleRate, tonal.MethodAutocorrelation)
}

// ExtractPitchWith estimates the pitch of frame with the given method.
// 0 means no pitch was detected.
func ExtractPitchWith(frame []float64, sampleRate int, method tonal.PitchDetectionMethod) float64 {
	return tonal.ExtractPitch(frame, sampleRate, method)
}

// RMS returns the root mean square of frame
func RMS(frame []float64) float64 {
	return temporal.NewEnergy().RMS(frame)
}

// ZeroCrossings returns the number of sign changes in frame
func ZeroCrossings(frame []float64) int {
	return spectral.NewZeroCrossingRate(0).Count(frame)
}

// SpectralCentroid returns the centroid of frame's amplitude spectrum in bins
func SpectralCentroid(frame []float64) float64 {
	return spectral.NewSpectralCentroid().Compute(AmplitudeSpectrum(frame))
}

// SpectralFlatness returns the flatness of frame's amplitude spectrum
func SpectralFlatness(frame []float64) float64 {
	return spectral.NewSpectralFlatness().Compute(AmplitudeSpectrum(frame))
}

// SpectralRolloff returns the frequency below which rolloffPoint of frame's
// spectral magnitude lies. A point outside (0, 1] selects 0.99.
func SpectralRolloff(frame []float64, sampleRate int, rolloffPoint float64) float64 {
	return spectral.NewSpectralRolloffWithPoint(sampleRate, rolloffPoint).Compute(AmplitudeSpectrum(frame))
}

// SpectralBandwidth returns the second-order spread of frame's spectrum in Hz
func SpectralBandwidth(frame []float64, sampleRate int) float64 {
	return spectral.NewSpectralBandwidth(sampleRate).Compute(AmplitudeSpectrum(frame))
}

// SpectralContrast returns the peak-to-valley difference of an amplitude
// spectrum in each band; nil bands select the defaults
func SpectralContrast(amplitudeSpectrum []float64, bands []spectral.Band) []float64 {
	return spectral.NewSpectralContrast(bands).Compute(amplitudeSpectrum)
}
