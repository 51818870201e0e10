package spectral

import (
	"math"
)

// PowerSpectrum builds one-sided amplitude and power spectra of real frames
type PowerSpectrum struct {
	fft *FFT
}

// NewPowerSpectrum creates a new spectrum builder
func NewPowerSpectrum() *PowerSpectrum {
	return &PowerSpectrum{fft: NewFFT()}
}

// Amplitude returns |X[i]| for i in [0, N/2).
// The upper half mirrors the lower one for real input and is dropped; for odd
// N the floor division also drops the last unpaired bin.
func (ps *PowerSpectrum) Amplitude(frame []float64) []float64 {
	spectrum := ps.fft.Compute(frame)
	bins := len(frame) / 2

	amplitude := make([]float64, bins)
	for i := range bins {
		re, im := real(spectrum[i]), imag(spectrum[i])
		amplitude[i] = math.Sqrt(re*re + im*im)
	}

	return amplitude
}

// Compute returns the one-sided power spectrum, amplitude squared per bin
func (ps *PowerSpectrum) Compute(frame []float64) []float64 {
	return ps.FromMagnitude(ps.Amplitude(frame))
}

// FromMagnitude squares an already computed magnitude spectrum
func (ps *PowerSpectrum) FromMagnitude(magnitudeSpectrum []float64) []float64 {
	power := make([]float64, len(magnitudeSpectrum))
	for i, mag := range magnitudeSpectrum {
		power[i] = mag * mag
	}

	return power
}

// BinFrequency returns the centre frequency in Hz of bin i for an N-point frame
func BinFrequency(i, frameSize, sampleRate int) float64 {
	if frameSize <= 0 {
		return 0.0
	}
	return float64(i) * float64(sampleRate) / float64(frameSize)
}
