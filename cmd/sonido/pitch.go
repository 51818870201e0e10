package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"github.com/RyanBlaney/sonido-frames/algorithms/tonal"
	"github.com/RyanBlaney/sonido-frames/logging"
)

// PitchFrame is one row of the pitch command output
type PitchFrame struct {
	Index int     `json:"index" yaml:"index"`
	Time  float64 `json:"time" yaml:"time"`
	Pitch float64 `json:"pitch" yaml:"pitch"` // 0 when unvoiced
}

// PitchReport is the output of the pitch command
type PitchReport struct {
	File       string       `json:"file" yaml:"file"`
	Method     string       `json:"method" yaml:"method"`
	SampleRate int          `json:"sample_rate" yaml:"sample_rate"`
	Frames     []PitchFrame `json:"frames" yaml:"frames"`
}

func newPitchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitch FILE.wav",
		Short: "Estimate the pitch of every frame of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPitch(cmd, args[0])
		},
	}

	addFrameFlags(cmd)
	cmd.Flags().String("method", "autocorrelation", "pitch method (autocorrelation, yin, hps)")

	return cmd
}

func (a *app) runPitch(cmd *cobra.Command, path string) error {
	audio, err := a.loadAudio(path)
	if err != nil {
		return err
	}

	params, err := a.config.PitchParams(audio.SampleRate)
	if err != nil {
		return err
	}
	detector, err := tonal.NewPitchDetectorWithParams(params)
	if err != nil {
		return fmt.Errorf("failed to create pitch detector: %w", err)
	}

	slider := common.NewSlidingWindow(a.config.Analysis.FrameSize, a.config.Analysis.HopSize)
	pitches := detector.DetectFrames(slider.Split(audio.PCM))

	report := PitchReport{
		File:       path,
		Method:     params.Method.String(),
		SampleRate: audio.SampleRate,
		Frames:     make([]PitchFrame, len(pitches)),
	}

	var voiced []float64
	for i, p := range pitches {
		report.Frames[i] = PitchFrame{
			Index: i,
			Time:  float64(slider.Offset(i)) / float64(audio.SampleRate),
			Pitch: p,
		}
		if p > 0 {
			voiced = append(voiced, p)
		}
	}

	a.logger.Info("Pitch detection complete", logging.Fields{
		"method": report.Method,
		"frames": len(pitches),
		"voiced": len(voiced),
	})

	return writeOutput(cmd.OutOrStdout(), a.config.OutputFormat, report, func(t *tableWriter) error {
		t.SetPrecision(a.config.Output.Precision)
		t.Header("frame", "time", "pitch")
		for _, f := range report.Frames {
			t.Row(f.Index, f.Time, f.Pitch)
		}
		if a.config.Output.Summary && len(report.Frames) > 0 {
			t.Summary("voiced", 2, [][]float64{voiced})
		}
		return nil
	})
}
