package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
)

// FilterBankReport is the output of the filterbank command
type FilterBankReport struct {
	NumFilters int         `json:"num_filters" yaml:"num_filters"`
	FFTSize    int         `json:"fft_size" yaml:"fft_size"`
	SampleRate int         `json:"sample_rate" yaml:"sample_rate"`
	BinPoints  []int       `json:"bin_points" yaml:"bin_points"`
	Filters    [][]float64 `json:"filters" yaml:"filters"`
}

func newFilterBankCmd(a *app) *cobra.Command {
	var numFilters, fftSize, sampleRate int

	cmd := &cobra.Command{
		Use:   "filterbank",
		Short: "Print the triangular mel filter bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("filters") {
				numFilters = a.config.MFCC.NumFilters
			}
			return a.runFilterBank(cmd, numFilters, fftSize, sampleRate)
		},
	}

	cmd.Flags().IntVar(&numFilters, "filters", 40, "number of mel filters (default from mfcc.num_filters)")
	cmd.Flags().IntVar(&fftSize, "fft-size", 512, "FFT size")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 44100, "sample rate in Hz")

	return cmd
}

func (a *app) runFilterBank(cmd *cobra.Command, numFilters, fftSize, sampleRate int) error {
	mel := spectral.NewMelScale()

	bank := mel.CreateMelFilterBank(numFilters, fftSize, sampleRate)
	if bank == nil {
		return fmt.Errorf("invalid filter bank: %d filters, fft size %d, sample rate %d", numFilters, fftSize, sampleRate)
	}

	report := FilterBankReport{
		NumFilters: numFilters,
		FFTSize:    fftSize,
		SampleRate: sampleRate,
		BinPoints:  mel.BinPoints(numFilters, fftSize, sampleRate),
		Filters:    bank,
	}

	return writeOutput(cmd.OutOrStdout(), a.config.OutputFormat, report, func(t *tableWriter) error {
		t.SetPrecision(a.config.Output.Precision)
		t.Header("filter", "start_bin", "center_bin", "end_bin", "start_hz", "end_hz", "weight")
		for m, row := range bank {
			start, center, end := report.BinPoints[m], report.BinPoints[m+1], report.BinPoints[m+2]
			t.Row(m, start, center, end,
				spectral.BinFrequency(start, fftSize, sampleRate),
				spectral.BinFrequency(end, fftSize, sampleRate),
				floats.Sum(row))
		}
		return nil
	})
}
