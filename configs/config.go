package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
	"github.com/RyanBlaney/sonido-frames/algorithms/tonal"
	"github.com/RyanBlaney/sonido-frames/algorithms/windowing"
	"github.com/RyanBlaney/sonido-frames/features"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

// EnvPrefix prefixes every environment override, e.g. SONIDO_PITCH_METHOD
const EnvPrefix = "SONIDO"

// Config represents the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	OutputFormat string `mapstructure:"output_format"`

	Analysis AnalysisConfig `mapstructure:"analysis"`
	MFCC     MFCCConfig     `mapstructure:"mfcc"`
	Pitch    PitchConfig    `mapstructure:"pitch"`
	Output   OutputConfig   `mapstructure:"output"`
}

// AnalysisConfig contains framing and input settings
type AnalysisConfig struct {
	FrameSize   int           `mapstructure:"frame_size"`
	HopSize     int           `mapstructure:"hop_size"`
	Window      string        `mapstructure:"window"`
	Workers     int           `mapstructure:"workers"`
	Channel     int           `mapstructure:"channel"` // -1 mixes all channels
	MaxDuration time.Duration `mapstructure:"max_duration"`

	RemoveDC           bool    `mapstructure:"remove_dc"`
	PreEmphasis        float64 `mapstructure:"pre_emphasis"` // 0 disables
	SilenceThresholdDB float64 `mapstructure:"silence_threshold_db"`

	EnableSpectral bool    `mapstructure:"enable_spectral"`
	RolloffPoint   float64 `mapstructure:"rolloff_point"`
	ContrastBands  [][]int `mapstructure:"contrast_bands"` // [start, end) pairs
}

// MFCCConfig contains cepstral analysis settings
type MFCCConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	FFTSize         int     `mapstructure:"fft_size"` // 0 follows analysis.frame_size
	NumFilters      int     `mapstructure:"num_filters"`
	NumCoefficients int     `mapstructure:"num_coefficients"`
	LogFloor        float64 `mapstructure:"log_floor"`
	UseLiftering    bool    `mapstructure:"use_liftering"`
	LifterCoeff     float64 `mapstructure:"lifter_coeff"`
}

// PitchConfig contains pitch detection settings
type PitchConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Method       string  `mapstructure:"method"`
	MinFreq      float64 `mapstructure:"min_freq"`
	MaxFreq      float64 `mapstructure:"max_freq"`
	YinMinFreq   float64 `mapstructure:"yin_min_freq"`
	YinMaxFreq   float64 `mapstructure:"yin_max_freq"`
	YinThreshold float64 `mapstructure:"yin_threshold"`
	Harmonics    []int   `mapstructure:"harmonics"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision int  `mapstructure:"precision"`
	Summary   bool `mapstructure:"summary"` // table output appends mean/stddev rows
}

// NewViper returns a viper instance with defaults, environment bindings and,
// when found, the config file applied. An explicit path must exist; without
// one the usual locations are searched and a missing file is not an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sonido")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sonido"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setDefaults(v)
	return v, nil
}

// Load reads the configuration from path (optional), the environment and defaults
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	config := &Config{}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	switch config.OutputFormat {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("unknown output format %q", config.OutputFormat)
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.LogFormat)
	}

	if config.Analysis.FrameSize <= 0 {
		return fmt.Errorf("analysis frame size must be positive")
	}
	if config.Analysis.HopSize < 0 {
		return fmt.Errorf("analysis hop size cannot be negative")
	}
	if _, err := windowing.ParseWindowType(config.Analysis.Window); err != nil {
		return err
	}
	if config.Analysis.Channel < transcode.MixChannels {
		return fmt.Errorf("invalid channel %d", config.Analysis.Channel)
	}
	if config.Analysis.PreEmphasis < 0 || config.Analysis.PreEmphasis >= 1 {
		return fmt.Errorf("pre-emphasis must be in [0, 1)")
	}
	if _, err := config.contrastBands(); err != nil {
		return err
	}

	if _, err := tonal.ParsePitchDetectionMethod(config.Pitch.Method); err != nil {
		return err
	}

	if config.MFCC.FFTSize < 0 {
		return fmt.Errorf("mfcc fft size cannot be negative")
	}

	return nil
}

func (c *Config) contrastBands() ([]spectral.Band, error) {
	bands := make([]spectral.Band, 0, len(c.Analysis.ContrastBands))
	for _, pair := range c.Analysis.ContrastBands {
		if len(pair) != 2 || pair[0] < 0 || pair[1] <= pair[0] {
			return nil, fmt.Errorf("invalid contrast band %v, want [start, end)", pair)
		}
		bands = append(bands, spectral.Band{Start: pair[0], End: pair[1]})
	}
	return bands, nil
}

// PitchParams returns detector parameters for a sample rate
func (c *Config) PitchParams(sampleRate int) (tonal.PitchDetectionParams, error) {
	method, err := tonal.ParsePitchDetectionMethod(c.Pitch.Method)
	if err != nil {
		return tonal.PitchDetectionParams{}, err
	}

	return tonal.PitchDetectionParams{
		Method:       method,
		SampleRate:   sampleRate,
		MinFreq:      c.Pitch.MinFreq,
		MaxFreq:      c.Pitch.MaxFreq,
		YinMinFreq:   c.Pitch.YinMinFreq,
		YinMaxFreq:   c.Pitch.YinMaxFreq,
		YinThreshold: c.Pitch.YinThreshold,
		Harmonics:    append([]int(nil), c.Pitch.Harmonics...),
	}, nil
}

// MFCCParams returns the cepstral parameters for a sample rate
func (c *Config) MFCCParams(sampleRate int) spectral.MFCCParams {
	return spectral.MFCCParams{
		FFTSize:         c.MFCC.FFTSize,
		SampleRate:      sampleRate,
		NumFilters:      c.MFCC.NumFilters,
		NumCoefficients: c.MFCC.NumCoefficients,
		LogFloor:        c.MFCC.LogFloor,
		UseLiftering:    c.MFCC.UseLiftering,
		LifterCoeff:     c.MFCC.LifterCoeff,
	}
}

// ExtractorConfig maps the configuration onto a batch extractor configuration
func (c *Config) ExtractorConfig() (*features.ExtractorConfig, error) {
	window, err := windowing.ParseWindowType(c.Analysis.Window)
	if err != nil {
		return nil, err
	}
	pitch, err := c.PitchParams(0)
	if err != nil {
		return nil, err
	}
	bands, err := c.contrastBands()
	if err != nil {
		return nil, err
	}

	return &features.ExtractorConfig{
		FrameSize:      c.Analysis.FrameSize,
		HopSize:        c.Analysis.HopSize,
		Window:         window,
		Workers:        c.Analysis.Workers,
		RemoveDC:       c.Analysis.RemoveDC,
		PreEmphasis:    c.Analysis.PreEmphasis,
		EnableMFCC:     c.MFCC.Enabled,
		EnablePitch:    c.Pitch.Enabled,
		EnableSpectral: c.Analysis.EnableSpectral,
		MFCC:           c.MFCCParams(0),
		Pitch:          pitch,
		ContrastBands:  bands,
		RolloffPoint:   c.Analysis.RolloffPoint,

		SilenceThresholdDB: c.Analysis.SilenceThresholdDB,
	}, nil
}

// DecoderConfig maps the configuration onto a WAV decoder configuration
func (c *Config) DecoderConfig() *transcode.DecoderConfig {
	return &transcode.DecoderConfig{
		Channel:     c.Analysis.Channel,
		MaxDuration: c.Analysis.MaxDuration,
	}
}
