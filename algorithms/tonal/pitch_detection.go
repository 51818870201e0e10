package tonal

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"github.com/RyanBlaney/sonido-frames/algorithms/harmonic"
	"github.com/RyanBlaney/sonido-frames/algorithms/stats"
)

// PitchDetectionMethod selects one of the pitch detection algorithms
type PitchDetectionMethod int

const (
	// MethodAutocorrelation picks the earliest strong autocorrelation peak.
	// It is the zero value and therefore the default.
	MethodAutocorrelation PitchDetectionMethod = iota

	// MethodYIN walks a cumulative difference function
	MethodYIN

	// MethodHPS multiplies folded copies of the power spectrum
	MethodHPS
)

// String returns the method name used in configuration and CLI flags
func (m PitchDetectionMethod) String() string {
	switch m {
	case MethodAutocorrelation:
		return "autocorrelation"
	case MethodYIN:
		return "yin"
	case MethodHPS:
		return "hps"
	default:
		return fmt.Sprintf("PitchDetectionMethod(%d)", int(m))
	}
}

// Valid reports whether m names a known method
func (m PitchDetectionMethod) Valid() bool {
	switch m {
	case MethodAutocorrelation, MethodYIN, MethodHPS:
		return true
	default:
		return false
	}
}

// ParsePitchDetectionMethod maps a method name to its value.
// An empty name selects MethodAutocorrelation.
func ParsePitchDetectionMethod(name string) (PitchDetectionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "autocorrelation", "acf":
		return MethodAutocorrelation, nil
	case "yin":
		return MethodYIN, nil
	case "hps":
		return MethodHPS, nil
	default:
		return 0, fmt.Errorf("unknown pitch detection method %q", name)
	}
}

// PitchDetectionParams contains parameters for pitch detection
type PitchDetectionParams struct {
	Method     PitchDetectionMethod `json:"method"`
	SampleRate int                  `json:"sample_rate"`

	// Autocorrelation search range
	MinFreq float64 `json:"min_freq"` // Minimum frequency (Hz), also sets the window size
	MaxFreq float64 `json:"max_freq"` // Maximum frequency (Hz)

	// YIN lag range and threshold
	YinMinFreq   float64 `json:"yin_min_freq"`  // tauMax = sampleRate/YinMinFreq
	YinMaxFreq   float64 `json:"yin_max_freq"`  // tauMin = sampleRate/YinMaxFreq
	YinThreshold float64 `json:"yin_threshold"` // Walk stops once yin[tau] <= threshold*yin[0]

	// HPS downsampling factors
	Harmonics []int `json:"harmonics"`
}

// DefaultPitchDetectionParams returns the default parameters for a sample rate
func DefaultPitchDetectionParams(sampleRate int) PitchDetectionParams {
	return PitchDetectionParams{
		Method:       MethodAutocorrelation,
		SampleRate:   sampleRate,
		MinFreq:      80.0,
		MaxFreq:      1000.0,
		YinMinFreq:   50.0,
		YinMaxFreq:   500.0,
		YinThreshold: 0.1,
		Harmonics:    append([]int(nil), harmonic.DefaultHarmonics...),
	}
}

// Validate checks the parameters
func (p PitchDetectionParams) Validate() error {
	if !p.Method.Valid() {
		return fmt.Errorf("invalid pitch detection method: %v", p.Method)
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", p.SampleRate)
	}
	if p.MinFreq <= 0 || p.MaxFreq <= p.MinFreq {
		return fmt.Errorf("invalid frequency range [%g, %g]", p.MinFreq, p.MaxFreq)
	}
	if p.YinMinFreq <= 0 || p.YinMaxFreq <= p.YinMinFreq {
		return fmt.Errorf("invalid YIN frequency range [%g, %g]", p.YinMinFreq, p.YinMaxFreq)
	}
	if p.YinThreshold < 0 {
		return fmt.Errorf("YIN threshold must not be negative, got %g", p.YinThreshold)
	}
	for _, h := range p.Harmonics {
		if h < 2 {
			return fmt.Errorf("invalid HPS harmonic %d, must be >= 2", h)
		}
	}
	return nil
}

// PitchDetector estimates the fundamental frequency of single frames.
// 0.0 means no pitch was detected.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
// - de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental frequency estimator for speech and music"
// - Schroeder, M.R. (1968). "Period histogram and product spectrum"
//
// A detector holds configuration only; Detect may be called concurrently.
type PitchDetector struct {
	params PitchDetectionParams

	autocorr *stats.AutoCorrelation
	hps      *harmonic.HarmonicProduct
}

// NewPitchDetector creates a pitch detector with default parameters
func NewPitchDetector(sampleRate int) (*PitchDetector, error) {
	return NewPitchDetectorWithParams(DefaultPitchDetectionParams(sampleRate))
}

// NewPitchDetectorWithParams creates a pitch detector with custom parameters
func NewPitchDetectorWithParams(params PitchDetectionParams) (*PitchDetector, error) {
	if len(params.Harmonics) == 0 {
		params.Harmonics = append([]int(nil), harmonic.DefaultHarmonics...)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	windowSize := int(float64(params.SampleRate) / params.MinFreq)

	return &PitchDetector{
		params:   params,
		autocorr: stats.NewAutoCorrelation(windowSize),
		hps:      harmonic.NewHarmonicProduct(params.SampleRate, params.Harmonics),
	}, nil
}

// GetParams returns the detector parameters
func (pd *PitchDetector) GetParams() PitchDetectionParams {
	return pd.params
}

// Detect estimates the pitch of a frame with the configured method
func (pd *PitchDetector) Detect(frame []float64) float64 {
	return pd.DetectWith(frame, pd.params.Method)
}

// DetectWith estimates the pitch of a frame with an explicit method.
// There is no fallback between methods; an unknown method yields 0.
func (pd *PitchDetector) DetectWith(frame []float64, method PitchDetectionMethod) float64 {
	switch method {
	case MethodAutocorrelation:
		return pd.detectAutocorrelation(frame)
	case MethodYIN:
		return pd.detectYin(frame)
	case MethodHPS:
		return pd.hps.EstimateF0(frame)
	default:
		return 0.0
	}
}

// peakHeightRatio is how close to the strongest autocorrelation peak an
// earlier peak must come to be taken as the period.
const peakHeightRatio = 0.9

type lagPeak struct {
	lag    int
	offset float64
	height float64
}

// localPeaks returns the local maxima of data in [start, end) with their
// parabolic vertex. end must leave a right neighbour inside data.
func localPeaks(data []float64, start, end int) []lagPeak {
	var peaks []lagPeak
	for lag := max(start, 1); lag < end; lag++ {
		if data[lag] > data[lag-1] && data[lag] >= data[lag+1] {
			offset, height := common.ParabolicVertex(data[lag-1], data[lag], data[lag+1])
			peaks = append(peaks, lagPeak{lag: lag, offset: offset, height: height})
		}
	}
	return peaks
}

// detectAutocorrelation finds the period among lags in [MinFreq, MaxFreq].
// Candidates are the local maxima of the autocorrelation, compared by the
// height of their interpolated vertex, not by the sampled value. The
// earliest candidate within peakHeightRatio of the strongest wins.
func (pd *PitchDetector) detectAutocorrelation(frame []float64) float64 {
	autocorrelation := pd.autocorr.Compute(frame)
	windowSize := len(autocorrelation)

	// Lags run from the shortest period up to the window; the peak needs a
	// neighbour on both sides for interpolation
	lagMin := int(float64(pd.params.SampleRate) / pd.params.MaxFreq)
	lagMax := windowSize - 1
	if lagMin < 1 || lagMin >= lagMax {
		return 0.0
	}

	var refined float64
	peaks := localPeaks(autocorrelation, lagMin, lagMax)
	if len(peaks) == 0 {
		// The period sits on the window edge: use the strongest sampled lag
		peakLag := common.ArgMaxInRange(autocorrelation, lagMin, lagMax)
		if peakLag < 0 || autocorrelation[peakLag] <= 0 {
			return 0.0
		}
		refined = common.InterpolatePeak(autocorrelation, peakLag)
	} else {
		strongest := peaks[0].height
		for _, peak := range peaks[1:] {
			strongest = max(strongest, peak.height)
		}
		if strongest <= 0 {
			return 0.0
		}
		for _, peak := range peaks {
			if peak.height >= peakHeightRatio*strongest {
				refined = float64(peak.lag) + peak.offset
				break
			}
		}
	}

	if refined <= 0 {
		return 0.0
	}

	return float64(pd.params.SampleRate) / refined
}

// detectYin runs the YIN-style search.
//
// The curve is a running sum of the squared difference function,
// yin[tau] = difference[tau] + yin[tau-1], not the cumulative mean
// normalised difference of the YIN paper. Pitch fixtures depend on this
// exact recurrence.
func (pd *PitchDetector) detectYin(frame []float64) float64 {
	sampleRate := float64(pd.params.SampleRate)
	tauMin := int(sampleRate / pd.params.YinMaxFreq)
	tauMax := int(sampleRate / pd.params.YinMinFreq)

	// tau-1 and tau+1 are read during refinement
	if tauMin < 1 || tauMax-1 <= tauMin {
		return 0.0
	}

	yin := make([]float64, tauMax)
	for tau := tauMin; tau < tauMax; tau++ {
		difference := 0.0
		for j := 0; j+tau < len(frame); j++ {
			delta := frame[j] - frame[j+tau]
			difference += delta * delta
		}
		yin[tau] = difference + yin[tau-1]
	}

	// Nothing differs across any lag: silence or a constant frame
	if yin[tauMax-1] == 0 {
		return 0.0
	}

	threshold := pd.params.YinThreshold * yin[0]
	tau := tauMin
	for tau < tauMax-1 && yin[tau] > threshold {
		tau++
	}
	if tau == tauMax-1 {
		return 0.0
	}

	s0, s1, s2 := yin[tau-1], yin[tau], yin[tau+1]
	interp := 0.5 * (s2 - s0) / (2*s1 - s2 - s0)
	if !common.IsFinite(interp) {
		interp = 0.0
	}

	period := float64(tau) + interp
	if period <= 0 {
		return 0.0
	}

	return sampleRate / period
}

// DetectFrames estimates the pitch of each frame
func (pd *PitchDetector) DetectFrames(frames [][]float64) []float64 {
	pitches := make([]float64, len(frames))
	for i, frame := range frames {
		pitches[i] = pd.Detect(frame)
	}
	return pitches
}

// ExtractPitch is a convenience for one-off detection with default parameters.
// Invalid sample rates yield 0.
func ExtractPitch(frame []float64, sampleRate int, method PitchDetectionMethod) float64 {
	params := DefaultPitchDetectionParams(sampleRate)
	params.Method = method

	detector, err := NewPitchDetectorWithParams(params)
	if err != nil {
		return 0.0
	}
	return detector.Detect(frame)
}
