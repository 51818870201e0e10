package filters

import (
	"fmt"
)

// DefaultPreEmphasis is the coefficient commonly used ahead of MFCC analysis
const DefaultPreEmphasis = 0.97

// PreEmphasis implements the first-order high-frequency boost
//
//	y[n] = x[n] - α*x[n-1]
//
// applied before cepstral analysis to flatten the spectral tilt of speech
// and most music.
//
// References:
//   - L.R. Rabiner, R.W. Schafer, "Digital Processing of Speech Signals",
//     Prentice-Hall, 1978, Chapter 4
type PreEmphasis struct {
	coefficient float64
}

// NewPreEmphasis creates a pre-emphasis filter; α must lie in [0, 1)
func NewPreEmphasis(coefficient float64) (*PreEmphasis, error) {
	if coefficient < 0 || coefficient >= 1 {
		return nil, fmt.Errorf("pre-emphasis coefficient must be in [0, 1), got %g", coefficient)
	}
	return &PreEmphasis{coefficient: coefficient}, nil
}

// Apply returns the filtered signal. The first sample passes unchanged
// since x[-1] is taken as 0.
func (pe *PreEmphasis) Apply(signal []float64) []float64 {
	output := make([]float64, len(signal))
	prev := 0.0
	for i, x := range signal {
		output[i] = x - pe.coefficient*prev
		prev = x
	}
	return output
}

// Coefficient returns α
func (pe *PreEmphasis) Coefficient() float64 {
	return pe.coefficient
}
