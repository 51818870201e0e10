package spectral

// DefaultRolloffPoint is the fraction of spectral energy below the rolloff frequency
const DefaultRolloffPoint = 0.99

// SpectralRolloff finds the frequency below which a given share of the
// spectral magnitude lies
type SpectralRolloff struct {
	sampleRate   int
	rolloffPoint float64
}

// NewSpectralRolloff creates a rolloff calculator with the default 0.99 point
func NewSpectralRolloff(sampleRate int) *SpectralRolloff {
	return NewSpectralRolloffWithPoint(sampleRate, DefaultRolloffPoint)
}

// NewSpectralRolloffWithPoint creates a rolloff calculator for a custom point in (0, 1]
func NewSpectralRolloffWithPoint(sampleRate int, rolloffPoint float64) *SpectralRolloff {
	if rolloffPoint <= 0 || rolloffPoint > 1 {
		rolloffPoint = DefaultRolloffPoint
	}
	return &SpectralRolloff{
		sampleRate:   sampleRate,
		rolloffPoint: rolloffPoint,
	}
}

// Compute walks down from the highest bin, removing magnitude until the
// remainder drops to rolloffPoint of the total, and returns the frequency of
// the first bin above the walk. Bins are spaced sampleRate/(2*(len-1)) apart.
func (sr *SpectralRolloff) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) < 2 {
		return 0.0
	}

	binWidth := float64(sr.sampleRate) / (2.0 * float64(len(magnitudeSpectrum)-1))

	integral := 0.0
	for _, mag := range magnitudeSpectrum {
		integral += mag
	}
	threshold := sr.rolloffPoint * integral

	i := len(magnitudeSpectrum) - 1
	for integral > threshold && i >= 0 {
		integral -= magnitudeSpectrum[i]
		i--
	}

	return float64(i+1) * binWidth
}
