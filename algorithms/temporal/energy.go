package temporal

import (
	"math"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
)

// Energy computes energy-based features of time-domain frames
type Energy struct{}

// NewEnergy creates a new energy calculator
func NewEnergy() *Energy {
	return &Energy{}
}

// Compute returns the signal energy, the sum of squared samples
func (e *Energy) Compute(frame []float64) float64 {
	return common.Energy(frame)
}

// RMS returns the root mean square of a frame, 0 for an empty frame
func (e *Energy) RMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}
	return math.Sqrt(common.Energy(frame) / float64(len(frame)))
}

// LogEnergy returns the natural log of the frame energy clamped to floor
func (e *Energy) LogEnergy(frame []float64, floor float64) float64 {
	return math.Log(max(common.Energy(frame), floor))
}
