package features

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"github.com/RyanBlaney/sonido-frames/algorithms/filters"
	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/algorithms/tonal"
	"github.com/RyanBlaney/sonido-frames/algorithms/windowing"
	"github.com/RyanBlaney/sonido-frames/logging"
)

// ExtractorConfig holds configuration for batch feature extraction
type ExtractorConfig struct {
	FrameSize int                  `json:"frame_size" yaml:"frame_size"`
	HopSize   int                  `json:"hop_size" yaml:"hop_size"`
	Window    windowing.WindowType `json:"window" yaml:"window"`
	Workers   int                  `json:"workers" yaml:"workers"` // <= 0 uses GOMAXPROCS

	// Whole-signal conditioning applied before framing
	RemoveDC    bool    `json:"remove_dc" yaml:"remove_dc"`
	PreEmphasis float64 `json:"pre_emphasis" yaml:"pre_emphasis"` // 0 disables

	SilenceThresholdDB float64 `json:"silence_threshold_db" yaml:"silence_threshold_db"`

	EnableMFCC     bool `json:"enable_mfcc" yaml:"enable_mfcc"`
	EnablePitch    bool `json:"enable_pitch" yaml:"enable_pitch"`
	EnableSpectral bool `json:"enable_spectral" yaml:"enable_spectral"`

	// MFCC.FFTSize 0 matches the filter bank to FrameSize; MFCC.SampleRate
	// is always taken from the signal
	MFCC spectral.MFCCParams `json:"mfcc" yaml:"mfcc"`

	// Pitch.SampleRate is always taken from the signal
	Pitch tonal.PitchDetectionParams `json:"pitch" yaml:"pitch"`

	ContrastBands []spectral.Band `json:"contrast_bands" yaml:"contrast_bands"`
	RolloffPoint  float64         `json:"rolloff_point" yaml:"rolloff_point"`
}

// DefaultExtractorConfig returns the default extraction configuration
func DefaultExtractorConfig() *ExtractorConfig {
	mfcc := spectral.DefaultMFCCParams()
	mfcc.FFTSize = 0

	return &ExtractorConfig{
		FrameSize:      4096,
		HopSize:        2048,
		Window:         windowing.WindowRectangular,
		Workers:        0,
		EnableMFCC:     true,
		EnablePitch:    true,
		EnableSpectral: true,
		MFCC:           mfcc,
		Pitch:          tonal.DefaultPitchDetectionParams(0),
		ContrastBands:  append([]spectral.Band(nil), spectral.DefaultContrastBands...),
		RolloffPoint:   spectral.DefaultRolloffPoint,

		SilenceThresholdDB: temporal.DefaultSilenceThresholdDB,
	}
}

// FrameFeatures are the descriptors of one analysis frame
type FrameFeatures struct {
	Index    int     `json:"index" yaml:"index"`
	Offset   int     `json:"offset" yaml:"offset"` // first sample of the frame
	Time     float64 `json:"time" yaml:"time"`     // seconds
	RMS      float64 `json:"rms" yaml:"rms"`
	Silent   bool    `json:"silent" yaml:"silent"`
	ZCR      int     `json:"zcr" yaml:"zcr"`
	Pitch    float64 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	Centroid float64 `json:"centroid,omitempty" yaml:"centroid,omitempty"`
	Flatness float64 `json:"flatness,omitempty" yaml:"flatness,omitempty"`
	Rolloff  float64 `json:"rolloff,omitempty" yaml:"rolloff,omitempty"`

	Bandwidth float64   `json:"bandwidth,omitempty" yaml:"bandwidth,omitempty"`
	Contrast  []float64 `json:"contrast,omitempty" yaml:"contrast,omitempty"`
	MFCC      []float64 `json:"mfcc,omitempty" yaml:"mfcc,omitempty"`
}

// Extractor frames a signal and computes FrameFeatures for every frame.
// Frames are independent, so they are processed by a bounded pool of
// goroutines, each writing only its own result slot.
type Extractor struct {
	config *ExtractorConfig
	logger logging.Logger
}

// NewExtractor creates a new extractor; a nil config selects the defaults
func NewExtractor(config *ExtractorConfig) *Extractor {
	if config == nil {
		config = DefaultExtractorConfig()
	}

	return &Extractor{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}
}

// WithLogger replaces the extractor's logger
func (e *Extractor) WithLogger(logger logging.Logger) *Extractor {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// frameAnalyzers bundles the per-signal analysis components.
// All of them are read-only after construction.
type frameAnalyzers struct {
	window   *windowing.Window
	silence  *temporal.SilenceDetector
	mfcc     *spectral.MFCC
	pitch    *tonal.PitchDetector
	energy   *temporal.Energy
	zcr      *spectral.ZeroCrossingRate

	// nil when spectral descriptors are disabled
	descriptors *spectralDescriptors
}

type spectralDescriptors struct {
	spectrum  *spectral.PowerSpectrum
	centroid  *spectral.SpectralCentroid
	flatness  *spectral.SpectralFlatness
	rolloff   *spectral.SpectralRolloff
	bandwidth *spectral.SpectralBandwidth
	contrast  *spectral.SpectralContrast
}

func (d *spectralDescriptors) compute(windowed []float64, features *FrameFeatures) {
	amplitude := d.spectrum.Amplitude(windowed)
	features.Centroid = d.centroid.Compute(amplitude)
	features.Flatness = d.flatness.Compute(amplitude)
	features.Rolloff = d.rolloff.Compute(amplitude)
	features.Bandwidth = d.bandwidth.Compute(amplitude)
	features.Contrast = d.contrast.Compute(amplitude)
}

func (e *Extractor) newAnalyzers(sampleRate int) (*frameAnalyzers, error) {
	cfg := e.config

	win, err := windowing.NewWindow(cfg.Window, cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a := &frameAnalyzers{
		window:  win,
		silence: temporal.NewSilenceDetector(cfg.SilenceThresholdDB),
		energy:  temporal.NewEnergy(),
		zcr:     spectral.NewZeroCrossingRate(sampleRate),
	}

	if cfg.EnableSpectral {
		a.descriptors = &spectralDescriptors{
			spectrum:  spectral.NewPowerSpectrum(),
			centroid:  spectral.NewSpectralCentroid(),
			flatness:  spectral.NewSpectralFlatness(),
			rolloff:   spectral.NewSpectralRolloffWithPoint(sampleRate, cfg.RolloffPoint),
			bandwidth: spectral.NewSpectralBandwidth(sampleRate),
			contrast:  spectral.NewSpectralContrast(cfg.ContrastBands),
		}
	}

	if cfg.EnableMFCC {
		params := cfg.MFCC
		params.SampleRate = sampleRate
		if params.FFTSize == 0 {
			params.FFTSize = cfg.FrameSize
		}
		if a.mfcc, err = spectral.NewMFCCWithParams(params); err != nil {
			return nil, fmt.Errorf("failed to initialize MFCC: %w", err)
		}
	}

	if cfg.EnablePitch {
		params := cfg.Pitch
		params.SampleRate = sampleRate
		if a.pitch, err = tonal.NewPitchDetectorWithParams(params); err != nil {
			return nil, fmt.Errorf("failed to initialize pitch detector: %w", err)
		}
	}

	return a, nil
}

// Extract computes features for every complete frame of signal.
// Trailing samples shorter than a frame are ignored. Cancelling ctx stops
// scheduling further frames and returns the context error.
func (e *Extractor) Extract(ctx context.Context, signal []float64, sampleRate int) ([]FrameFeatures, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if e.config.FrameSize <= 0 {
		return nil, fmt.Errorf("invalid frame size: %d", e.config.FrameSize)
	}

	logger := e.logger.WithFields(logging.Fields{
		"function":    "Extract",
		"sample_rate": sampleRate,
		"samples":     len(signal),
		"frame_size":  e.config.FrameSize,
		"hop_size":    e.config.HopSize,
	})

	analyzers, err := e.newAnalyzers(sampleRate)
	if err != nil {
		logger.Error(err, "Failed to prepare analyzers")
		return nil, err
	}

	signal, err = e.condition(signal)
	if err != nil {
		logger.Error(err, "Failed to condition signal")
		return nil, err
	}

	slider := common.NewSlidingWindow(e.config.FrameSize, e.config.HopSize)
	numFrames := slider.NumFrames(len(signal))
	results := make([]FrameFeatures, numFrames)

	if numFrames == 0 {
		logger.Warn("Signal shorter than one frame, nothing to extract")
		return results, nil
	}

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range numFrames {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			offset := slider.Offset(i)
			frame := signal[offset : offset+e.config.FrameSize]

			features, err := analyzers.analyze(frame)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}

			features.Index = i
			features.Offset = offset
			features.Time = float64(offset) / float64(sampleRate)
			results[i] = features
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error(err, "Feature extraction failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	silent := make([]bool, numFrames)
	for i, f := range results {
		silent[i] = f.Silent
	}

	logger.Debug("Feature extraction complete", logging.Fields{
		"frames":           numFrames,
		"workers":          workers,
		"silence_ratio":    analyzers.silence.SilenceRatio(silent),
		"silence_segments": len(analyzers.silence.Segments(silent, 1)),
		"duration_ms":      time.Since(start).Milliseconds(),
	})

	return results, nil
}

// condition applies the configured DC removal and pre-emphasis without
// modifying the input
func (e *Extractor) condition(signal []float64) ([]float64, error) {
	if e.config.RemoveDC {
		dc, err := filters.NewDCRemoval(filters.DefaultDCPole)
		if err != nil {
			return nil, err
		}
		signal = dc.Apply(signal)
	}

	if e.config.PreEmphasis != 0 {
		pe, err := filters.NewPreEmphasis(e.config.PreEmphasis)
		if err != nil {
			return nil, err
		}
		signal = pe.Apply(signal)
	}

	return signal, nil
}

// analyze computes the descriptors of a single frame. frame is shared with
// the caller's signal and is only read.
func (a *frameAnalyzers) analyze(frame []float64) (FrameFeatures, error) {
	features := FrameFeatures{
		RMS:    a.energy.RMS(frame),
		ZCR:    a.zcr.Count(frame),
		Silent: a.silence.IsSilent(frame),
	}

	if a.pitch != nil {
		features.Pitch = a.pitch.Detect(frame)
	}

	windowed, err := a.window.Apply(frame)
	if err != nil {
		return features, err
	}

	if a.descriptors != nil {
		a.descriptors.compute(windowed, &features)
	}

	if a.mfcc != nil {
		features.MFCC = a.mfcc.Compute(windowed)
	}

	return features, nil
}
