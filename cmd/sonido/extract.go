package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-frames/features"
	"github.com/RyanBlaney/sonido-frames/logging"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

// ExtractReport is the output of the extract command
type ExtractReport struct {
	File       string                   `json:"file" yaml:"file"`
	SampleRate int                      `json:"sample_rate" yaml:"sample_rate"`
	Channels   int                      `json:"channels" yaml:"channels"`
	Duration   time.Duration            `json:"duration" yaml:"duration"`
	FrameSize  int                      `json:"frame_size" yaml:"frame_size"`
	HopSize    int                      `json:"hop_size" yaml:"hop_size"`
	Frames     []features.FrameFeatures `json:"frames" yaml:"frames"`
}

func newExtractCmd(a *app) *cobra.Command {
	var noMFCC bool

	cmd := &cobra.Command{
		Use:   "extract FILE.wav",
		Short: "Compute per-frame features of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], noMFCC)
		},
	}

	addFrameFlags(cmd)
	cmd.Flags().Int("workers", 0, "concurrent frame workers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&noMFCC, "no-mfcc", false, "skip MFCC computation")

	return cmd
}

func (a *app) loadAudio(path string) (*transcode.AudioData, error) {
	audio, err := transcode.NewDecoder(a.config.DecoderConfig()).DecodeFile(path)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Audio loaded", logging.Fields{
		"file":        path,
		"sample_rate": audio.SampleRate,
		"channels":    audio.Channels,
		"samples":     len(audio.PCM),
	})
	return audio, nil
}

func (a *app) runExtract(cmd *cobra.Command, path string, noMFCC bool) error {
	audio, err := a.loadAudio(path)
	if err != nil {
		return err
	}

	extractorConfig, err := a.config.ExtractorConfig()
	if err != nil {
		return err
	}
	if noMFCC {
		extractorConfig.EnableMFCC = false
	}

	frames, err := features.NewExtractor(extractorConfig).
		WithLogger(a.logger).
		Extract(cmd.Context(), audio.PCM, audio.SampleRate)
	if err != nil {
		return fmt.Errorf("feature extraction failed: %w", err)
	}

	report := ExtractReport{
		File:       path,
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
		Duration:   audio.Duration,
		FrameSize:  extractorConfig.FrameSize,
		HopSize:    extractorConfig.HopSize,
		Frames:     frames,
	}

	return writeOutput(cmd.OutOrStdout(), a.config.OutputFormat, report, func(t *tableWriter) error {
		t.SetPrecision(a.config.Output.Precision)
		t.Header("time", "rms", "zcr", "pitch", "centroid", "flatness", "rolloff", "bandwidth", "mfcc0")

		columns := make([][]float64, 8)
		for _, f := range frames {
			mfcc0 := 0.0
			if len(f.MFCC) > 0 {
				mfcc0 = f.MFCC[0]
			}
			t.Row(f.Time, f.RMS, f.ZCR, f.Pitch, f.Centroid, f.Flatness, f.Rolloff, f.Bandwidth, mfcc0)

			for i, v := range []float64{f.RMS, float64(f.ZCR), f.Pitch, f.Centroid, f.Flatness, f.Rolloff, f.Bandwidth, mfcc0} {
				columns[i] = append(columns[i], v)
			}
		}

		if a.config.Output.Summary && len(frames) > 0 {
			t.Summary("all", 1, columns)
		}
		return nil
	})
}
