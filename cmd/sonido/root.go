package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-frames/configs"
	"github.com/RyanBlaney/sonido-frames/logging"
)

// flagKeys maps command-line flags onto configuration keys
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"output":     "output_format",
	"frame-size": "analysis.frame_size",
	"hop-size":   "analysis.hop_size",
	"window":     "analysis.window",
	"workers":    "analysis.workers",
	"channel":    "analysis.channel",
	"method":     "pitch.method",
}

// app carries state shared by all subcommands once flags are parsed
type app struct {
	configFile string

	config *configs.Config
	logger logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sonido",
		Short: "Frame-level audio feature extraction",
		Long: `sonido splits audio into fixed-length frames and computes spectral
descriptors (MFCC, centroid, flatness, rolloff, bandwidth, contrast),
temporal descriptors (RMS, zero crossings) and pitch estimates using
autocorrelation, YIN or the harmonic product spectrum.

Configuration is read from --config, ./sonido.yaml, ./configs/sonido.yaml or
$HOME/.config/sonido/sonido.yaml, and can be overridden with SONIDO_*
environment variables and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (default searches ./sonido.yaml and $HOME/.config/sonido)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text",
		"log format (text, json)")
	rootCmd.PersistentFlags().StringP("output", "o", "table",
		"output format (json, yaml, table)")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newPitchCmd(a),
		newFilterBankCmd(a),
	)

	return rootCmd
}

// initialize loads configuration and installs the logger
func (a *app) initialize(cmd *cobra.Command) error {
	v, err := configs.NewViper(a.configFile)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	config, err := configs.FromViper(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, config)
	if err != nil {
		return err
	}

	a.config = config
	a.logger = logger.WithFields(logging.Fields{
		"component": "cli",
		"command":   cmd.Name(),
	})
	logging.SetGlobalLogger(logger)

	a.logger.Debug("Configuration loaded", logging.Fields{
		"config_file": v.ConfigFileUsed(),
	})

	return nil
}

// bindFlags binds each known cobra flag to its configuration key so that
// explicitly set flags override file and environment values
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func newLogger(cmd *cobra.Command, config *configs.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	var logger logging.Logger
	switch config.LogFormat {
	case "json":
		zl, err := logging.NewZapLogger("json", cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		logger = zl
	default:
		// data goes to stdout, so every level logs to stderr
		logger = logging.NewDefaultLoggerWithWriters(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	}

	logger.SetLevel(level)
	return logger, nil
}

// addFrameFlags registers the framing flags shared by extract and pitch
func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().Int("frame-size", 4096, "samples per analysis frame")
	cmd.Flags().Int("hop-size", 2048, "samples between frame starts (0 = frame size)")
	cmd.Flags().String("window", "rectangular", "window (rectangular, hann, hamming, blackman, bartlett)")
	cmd.Flags().Int("channel", 0, "channel to analyse, -1 mixes all channels")
}
