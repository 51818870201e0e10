package windowing

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/window"
)

// WindowType selects the taper applied to a frame before spectral analysis
type WindowType string

const (
	WindowRectangular WindowType = "rectangular"
	WindowHann        WindowType = "hann"
	WindowHamming     WindowType = "hamming"
	WindowBlackman    WindowType = "blackman"
	WindowBartlett    WindowType = "bartlett"
)

// ParseWindowType maps a configuration name to a WindowType.
// An empty name or "none" selects the rectangular window.
func ParseWindowType(name string) (WindowType, error) {
	switch WindowType(strings.ToLower(strings.TrimSpace(name))) {
	case "", "none", WindowRectangular:
		return WindowRectangular, nil
	case WindowHann, "hanning":
		return WindowHann, nil
	case WindowHamming:
		return WindowHamming, nil
	case WindowBlackman:
		return WindowBlackman, nil
	case WindowBartlett:
		return WindowBartlett, nil
	default:
		return "", fmt.Errorf("unknown window type %q", name)
	}
}

// Window holds precomputed coefficients for one frame size
type Window struct {
	windowType   WindowType
	coefficients []float64
}

// NewWindow creates a window of the given type and size
func NewWindow(windowType WindowType, size int) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid window size: %d", size)
	}

	var coefficients []float64
	switch windowType {
	case WindowRectangular, "":
		coefficients = window.Rectangular(size)
		windowType = WindowRectangular
	case WindowHann:
		coefficients = window.Hann(size)
	case WindowHamming:
		coefficients = window.Hamming(size)
	case WindowBlackman:
		coefficients = window.Blackman(size)
	case WindowBartlett:
		coefficients = window.Bartlett(size)
	default:
		return nil, fmt.Errorf("unknown window type %q", windowType)
	}

	return &Window{
		windowType:   windowType,
		coefficients: coefficients,
	}, nil
}

// Apply returns a windowed copy of signal, leaving the input untouched
func (w *Window) Apply(signal []float64) ([]float64, error) {
	if len(signal) != len(w.coefficients) {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(w.coefficients))
	}

	windowed := make([]float64, len(signal))
	for i, sample := range signal {
		windowed[i] = sample * w.coefficients[i]
	}

	return windowed, nil
}

// Type returns the window type
func (w *Window) Type() WindowType {
	return w.windowType
}

// Size returns the number of coefficients
func (w *Window) Size() int {
	return len(w.coefficients)
}

// Coefficients returns a copy of the window coefficients
func (w *Window) Coefficients() []float64 {
	return append([]float64(nil), w.coefficients...)
}
