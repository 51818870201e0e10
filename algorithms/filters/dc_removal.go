package filters

import (
	"fmt"
	"math"
)

// DefaultDCPole places the DC blocker cutoff near 8 Hz at 44.1 kHz
const DefaultDCPole = 0.995

// DCRemoval is a one-pole DC blocking filter
//
//	y[n] = x[n] - x[n-1] + R*y[n-1]
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
type DCRemoval struct {
	pole float64
}

// NewDCRemoval creates a DC blocker with pole R in (0, 1)
func NewDCRemoval(pole float64) (*DCRemoval, error) {
	if pole <= 0 || pole >= 1 {
		return nil, fmt.Errorf("DC removal pole must be in (0, 1), got %g", pole)
	}
	return &DCRemoval{pole: pole}, nil
}

// NewDCRemovalWithCutoff derives the pole from a -3 dB cutoff using
// R = 1 - 2*pi*fc/fs, clamped to [0.001, 0.999]
func NewDCRemovalWithCutoff(sampleRate int, cutoffFreq float64) (*DCRemoval, error) {
	if sampleRate <= 0 || cutoffFreq <= 0 {
		return nil, fmt.Errorf("invalid DC removal cutoff %g Hz at %d Hz", cutoffFreq, sampleRate)
	}
	pole := 1.0 - 2.0*math.Pi*cutoffFreq/float64(sampleRate)
	return NewDCRemoval(math.Min(math.Max(pole, 0.001), 0.999))
}

// Apply returns the filtered signal, starting from zero state
func (dc *DCRemoval) Apply(signal []float64) []float64 {
	output := make([]float64, len(signal))
	x1, y1 := 0.0, 0.0
	for i, x := range signal {
		y := x - x1 + dc.pole*y1
		output[i] = y
		x1, y1 = x, y
	}
	return output
}

// CutoffFrequency returns the approximate -3 dB cutoff, (1-R)*fs/(2*pi)
func (dc *DCRemoval) CutoffFrequency(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	return (1.0 - dc.pole) * float64(sampleRate) / (2.0 * math.Pi)
}
