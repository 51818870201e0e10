package spectral

import (
	"math"
)

func generateSine(freq float64, sampleRate, numSamples int, amplitude float64) []float64 {
	signal := make([]float64, numSamples)
	for n := range signal {
		signal[n] = amplitude * math.Sin(2*math.Pi*freq*float64(n)/float64(sampleRate))
	}
	return signal
}
