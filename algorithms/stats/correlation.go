package stats

import (
	"gonum.org/v1/gonum/floats"
)

// AutoCorrelation computes the raw lagged autocorrelation of a frame
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
type AutoCorrelation struct {
	windowSize int
}

// NewAutoCorrelation creates an autocorrelation over lags [0, windowSize)
func NewAutoCorrelation(windowSize int) *AutoCorrelation {
	return &AutoCorrelation{windowSize: windowSize}
}

// Compute returns value[tau] = sum_{j=0}^{len-tau-1} x[j]*x[j+tau] for every
// lag in [0, windowSize). This is the biased estimator with no normalisation.
// Lags at or beyond the frame length have no overlapping samples and are 0.
// Cost is O(windowSize*len).
func (ac *AutoCorrelation) Compute(signal []float64) []float64 {
	if ac.windowSize <= 0 {
		return []float64{}
	}

	correlations := make([]float64, ac.windowSize)
	for lag := range min(ac.windowSize, len(signal)) {
		overlap := len(signal) - lag
		correlations[lag] = floats.Dot(signal[:overlap], signal[lag:])
	}

	return correlations
}

// WindowSize returns the number of lags computed
func (ac *AutoCorrelation) WindowSize() int {
	return ac.windowSize
}
