package configs

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_format", "table")

	// Framing defaults
	// 4096 samples hold several periods at pitch.min_freq
	v.SetDefault("analysis.frame_size", 4096)
	v.SetDefault("analysis.hop_size", 2048)
	v.SetDefault("analysis.window", "rectangular")
	v.SetDefault("analysis.workers", 0) // GOMAXPROCS
	v.SetDefault("analysis.channel", 0)
	v.SetDefault("analysis.max_duration", time.Duration(0))
	v.SetDefault("analysis.remove_dc", false)
	v.SetDefault("analysis.pre_emphasis", 0.0)
	v.SetDefault("analysis.silence_threshold_db", -60.0)
	v.SetDefault("analysis.enable_spectral", true)
	v.SetDefault("analysis.rolloff_point", 0.99)
	v.SetDefault("analysis.contrast_bands", [][]int{{0, 2}, {2, 4}, {4, 7}})

	// MFCC defaults; fft_size 0 sizes the filter bank to the frame
	v.SetDefault("mfcc.enabled", true)
	v.SetDefault("mfcc.fft_size", 0)
	v.SetDefault("mfcc.num_filters", 40)
	v.SetDefault("mfcc.num_coefficients", 13)
	v.SetDefault("mfcc.log_floor", 1e-10)
	v.SetDefault("mfcc.use_liftering", false)
	v.SetDefault("mfcc.lifter_coeff", 22.0)

	// Pitch defaults
	v.SetDefault("pitch.enabled", true)
	v.SetDefault("pitch.method", "autocorrelation")
	v.SetDefault("pitch.min_freq", 80.0)
	v.SetDefault("pitch.max_freq", 1000.0)
	v.SetDefault("pitch.yin_min_freq", 50.0)
	v.SetDefault("pitch.yin_max_freq", 500.0)
	v.SetDefault("pitch.yin_threshold", 0.1)
	v.SetDefault("pitch.harmonics", []int{2, 3, 4})

	// Output defaults
	v.SetDefault("output.precision", 4)
	v.SetDefault("output.summary", true)
}
