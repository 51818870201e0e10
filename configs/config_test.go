package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
	"github.com/RyanBlaney/sonido-frames/algorithms/tonal"
	"github.com/RyanBlaney/sonido-frames/algorithms/windowing"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	config, err := FromViper(v)
	require.NoError(t, err)
	return config
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sonido.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	config := defaultConfig(t)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "table", config.OutputFormat)

	assert.Equal(t, 4096, config.Analysis.FrameSize)
	assert.Equal(t, 2048, config.Analysis.HopSize)
	assert.True(t, config.Analysis.EnableSpectral)
	assert.Equal(t, "rectangular", config.Analysis.Window)
	assert.Equal(t, 0.99, config.Analysis.RolloffPoint)
	assert.Equal(t, -60.0, config.Analysis.SilenceThresholdDB)
	assert.False(t, config.Analysis.RemoveDC)
	assert.Zero(t, config.Analysis.PreEmphasis)
	assert.Equal(t, [][]int{{0, 2}, {2, 4}, {4, 7}}, config.Analysis.ContrastBands)

	assert.Equal(t, 40, config.MFCC.NumFilters)
	assert.Equal(t, 13, config.MFCC.NumCoefficients)
	assert.Equal(t, 1e-10, config.MFCC.LogFloor)

	assert.Equal(t, "autocorrelation", config.Pitch.Method)
	assert.Equal(t, 80.0, config.Pitch.MinFreq)
	assert.Equal(t, 1000.0, config.Pitch.MaxFreq)
	assert.Equal(t, 50.0, config.Pitch.YinMinFreq)
	assert.Equal(t, 500.0, config.Pitch.YinMaxFreq)
	assert.Equal(t, []int{2, 3, 4}, config.Pitch.Harmonics)
}

func TestDefaultsMatchLibraryDefaults(t *testing.T) {
	config := defaultConfig(t)

	pitch, err := config.PitchParams(44100)
	require.NoError(t, err)
	assert.Equal(t, tonal.DefaultPitchDetectionParams(44100), pitch)

	mfcc := config.MFCCParams(44100)
	want := spectral.DefaultMFCCParams()
	want.FFTSize = 0
	assert.Equal(t, want, mfcc)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
output_format: json
analysis:
  frame_size: 1024
  hop_size: 256
  window: hann
  max_duration: 2s
  pre_emphasis: 0.97
  remove_dc: true
  enable_spectral: false
  contrast_bands: [[0, 4], [4, 16]]
pitch:
  method: yin
  harmonics: [2, 3]
mfcc:
  num_coefficients: 20
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", config.OutputFormat)
	assert.Equal(t, 1024, config.Analysis.FrameSize)
	assert.Equal(t, 2*time.Second, config.Analysis.MaxDuration)
	assert.Equal(t, 20, config.MFCC.NumCoefficients)
	assert.Equal(t, 40, config.MFCC.NumFilters)

	extractor, err := config.ExtractorConfig()
	require.NoError(t, err)
	assert.Equal(t, windowing.WindowHann, extractor.Window)
	assert.Equal(t, 256, extractor.HopSize)
	assert.Equal(t, 0.97, extractor.PreEmphasis)
	assert.True(t, extractor.RemoveDC)
	assert.False(t, extractor.EnableSpectral)
	assert.Equal(t, -60.0, extractor.SilenceThresholdDB)
	assert.Equal(t, tonal.MethodYIN, extractor.Pitch.Method)
	assert.Equal(t, []int{2, 3}, extractor.Pitch.Harmonics)
	assert.Equal(t, []spectral.Band{{Start: 0, End: 4}, {Start: 4, End: 16}}, extractor.ContrastBands)

	decoder := config.DecoderConfig()
	assert.Equal(t, 2*time.Second, decoder.MaxDuration)
	assert.Equal(t, 0, decoder.Channel)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("SONIDO_PITCH_METHOD", "hps")
	t.Setenv("SONIDO_ANALYSIS_CHANNEL", "-1")

	config, err := Load(writeConfig(t, "pitch:\n  method: yin\n"))
	require.NoError(t, err)

	assert.Equal(t, "hps", config.Pitch.Method)
	assert.Equal(t, transcode.MixChannels, config.DecoderConfig().Channel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"output format", func(c *Config) { c.OutputFormat = "csv" }},
		{"log format", func(c *Config) { c.LogFormat = "logfmt" }},
		{"frame size", func(c *Config) { c.Analysis.FrameSize = 0 }},
		{"hop size", func(c *Config) { c.Analysis.HopSize = -1 }},
		{"window", func(c *Config) { c.Analysis.Window = "triangle" }},
		{"channel", func(c *Config) { c.Analysis.Channel = -2 }},
		{"pre-emphasis", func(c *Config) { c.Analysis.PreEmphasis = 1 }},
		{"contrast band", func(c *Config) { c.Analysis.ContrastBands = [][]int{{4, 2}} }},
		{"pitch method", func(c *Config) { c.Pitch.Method = "cepstrum" }},
		{"mfcc fft size", func(c *Config) { c.MFCC.FFTSize = -512 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultConfig(t)
			tt.mutate(config)
			assert.Error(t, ValidateConfig(config))
		})
	}

	assert.NoError(t, ValidateConfig(defaultConfig(t)))
}
