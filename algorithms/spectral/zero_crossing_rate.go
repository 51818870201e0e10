package spectral

import (
	"math"
)

// ZeroCrossingRate counts sign changes in a time-domain frame
type ZeroCrossingRate struct {
	sampleRate int
}

// NewZeroCrossingRate creates a new zero crossing counter
func NewZeroCrossingRate(sampleRate int) *ZeroCrossingRate {
	return &ZeroCrossingRate{sampleRate: sampleRate}
}

// Count returns the number of adjacent sample pairs whose sign differs.
// The sign bit is compared, so +0 and -0 count as different signs.
func (zcr *ZeroCrossingRate) Count(frame []float64) int {
	if len(frame) < 2 {
		return 0
	}

	crossings := 0
	previous := math.Signbit(frame[0])
	for _, sample := range frame[1:] {
		current := math.Signbit(sample)
		if current != previous {
			crossings++
		}
		previous = current
	}

	return crossings
}

// Compute returns the crossing count converted to crossings per second
func (zcr *ZeroCrossingRate) Compute(frame []float64) float64 {
	if len(frame) < 2 || zcr.sampleRate <= 0 {
		return 0.0
	}

	frameDuration := float64(len(frame)) / float64(zcr.sampleRate)
	return float64(zcr.Count(frame)) / frameDuration
}
