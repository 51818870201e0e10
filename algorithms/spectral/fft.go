package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides the forward discrete Fourier transform of real frames.
// It holds no state, so one value may be shared between goroutines.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the N-point DFT of a real frame of length N.
// Any N is accepted; go-dsp falls back to Bluestein for sizes that are not
// a power of two. An empty frame yields an empty, non-nil result.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// ComputeInverse computes the inverse DFT
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes the inverse DFT and keeps the real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}
