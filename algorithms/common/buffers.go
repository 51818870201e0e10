package common

// SlidingWindow splits a signal into fixed-size, possibly overlapping frames
type SlidingWindow struct {
	windowSize int
	hopSize    int
}

// NewSlidingWindow creates a new sliding window.
// A non-positive hop falls back to the window size (no overlap).
func NewSlidingWindow(windowSize, hopSize int) *SlidingWindow {
	if hopSize <= 0 {
		hopSize = windowSize
	}
	return &SlidingWindow{
		windowSize: windowSize,
		hopSize:    hopSize,
	}
}

// NumFrames returns how many complete frames Split produces for n samples
func (sw *SlidingWindow) NumFrames(n int) int {
	if sw.windowSize <= 0 || n < sw.windowSize {
		return 0
	}
	return (n-sw.windowSize)/sw.hopSize + 1
}

// Offset returns the first sample index of frame i
func (sw *SlidingWindow) Offset(i int) int {
	return i * sw.hopSize
}

// Split returns copies of every complete frame in signal.
// Trailing samples that do not fill a frame are dropped.
func (sw *SlidingWindow) Split(signal []float64) [][]float64 {
	numFrames := sw.NumFrames(len(signal))
	frames := make([][]float64, numFrames)

	for i := range numFrames {
		start := sw.Offset(i)
		frame := make([]float64, sw.windowSize)
		copy(frame, signal[start:start+sw.windowSize])
		frames[i] = frame
	}

	return frames
}

// GetWindowSize returns the window size
func (sw *SlidingWindow) GetWindowSize() int {
	return sw.windowSize
}

// GetHopSize returns the hop size
func (sw *SlidingWindow) GetHopSize() int {
	return sw.hopSize
}
