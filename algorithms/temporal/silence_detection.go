package temporal

import (
	"math"
)

// DefaultSilenceThresholdDB is the RMS level (dBFS) below which a frame is silent
const DefaultSilenceThresholdDB = -60.0

// SilenceDetector flags frames whose RMS level falls below a threshold
type SilenceDetector struct {
	thresholdDB float64
	energy      *Energy
}

// NewSilenceDetector creates a detector with a dBFS threshold
func NewSilenceDetector(thresholdDB float64) *SilenceDetector {
	return &SilenceDetector{
		thresholdDB: thresholdDB,
		energy:      NewEnergy(),
	}
}

// IsSilent reports whether 20*log10(rms(frame)) is below the threshold.
// Empty and all-zero frames are silent.
func (sd *SilenceDetector) IsSilent(frame []float64) bool {
	rms := sd.energy.RMS(frame)
	if rms == 0 {
		return true
	}
	return 20*math.Log10(rms) < sd.thresholdDB
}

// Segments groups consecutive silent frames into [start, end) frame ranges,
// keeping runs of at least minFrames
func (sd *SilenceDetector) Segments(silent []bool, minFrames int) [][2]int {
	var segments [][2]int
	start := -1

	for i, s := range silent {
		switch {
		case s && start == -1:
			start = i
		case !s && start != -1:
			if i-start >= minFrames {
				segments = append(segments, [2]int{start, i})
			}
			start = -1
		}
	}

	if start != -1 && len(silent)-start >= minFrames {
		segments = append(segments, [2]int{start, len(silent)})
	}

	return segments
}

// SilenceRatio returns the fraction of silent frames
func (sd *SilenceDetector) SilenceRatio(silent []bool) float64 {
	if len(silent) == 0 {
		return 0.0
	}
	count := 0
	for _, s := range silent {
		if s {
			count++
		}
	}
	return float64(count) / float64(len(silent))
}

// ThresholdDB returns the configured threshold
func (sd *SilenceDetector) ThresholdDB() float64 {
	return sd.thresholdDB
}
