package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MFCC computes Mel-Frequency Cepstral Coefficients of single frames
type MFCC struct {
	params MFCCParams

	powerSpectrum *PowerSpectrum
	filterBank    [][]float64
	filterMatrix  *mat.Dense
	dct           *DCT
}

// MFCCParams contains parameters for MFCC computation
type MFCCParams struct {
	FFTSize         int     `json:"fft_size"`         // Filter bank FFT size (default: 512)
	SampleRate      int     `json:"sample_rate"`      // Sample rate in Hz (default: 44100)
	NumFilters      int     `json:"num_filters"`      // Mel filters (default: 40)
	NumCoefficients int     `json:"num_coefficients"` // Cepstral coefficients kept (default: 13)
	LogFloor        float64 `json:"log_floor"`        // Energies are clamped to this before ln (default: 1e-10)
	UseLiftering    bool    `json:"use_liftering"`    // Apply sinusoidal liftering (default: false)
	LifterCoeff     float64 `json:"lifter_coeff"`     // Liftering coefficient (default: 22)
}

// MFCCResult contains MFCC computation results
type MFCCResult struct {
	MFCC        []float64 `json:"mfcc"`         // Cepstral coefficients
	MelSpectrum []float64 `json:"mel_spectrum"` // Filter bank energies before the log
}

// DefaultMFCCParams returns the default MFCC configuration
func DefaultMFCCParams() MFCCParams {
	return MFCCParams{
		FFTSize:         512,
		SampleRate:      44100,
		NumFilters:      40,
		NumCoefficients: 13,
		LogFloor:        1e-10,
		UseLiftering:    false,
		LifterCoeff:     22.0,
	}
}

// Validate checks that the parameters describe a usable filter bank
func (p MFCCParams) Validate() error {
	if p.FFTSize < 2 {
		return fmt.Errorf("invalid FFT size: %d", p.FFTSize)
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", p.SampleRate)
	}
	if p.NumFilters < 1 {
		return fmt.Errorf("invalid number of mel filters: %d", p.NumFilters)
	}
	if p.NumCoefficients < 0 {
		return fmt.Errorf("invalid number of coefficients: %d", p.NumCoefficients)
	}
	if p.LogFloor <= 0 {
		return fmt.Errorf("log floor must be positive, got %g", p.LogFloor)
	}
	return nil
}

// NewMFCC creates an MFCC computer with default parameters and the given
// number of coefficients
func NewMFCC(numCoefficients int) (*MFCC, error) {
	params := DefaultMFCCParams()
	params.NumCoefficients = numCoefficients
	return NewMFCCWithParams(params)
}

// NewMFCCWithParams creates an MFCC computer with custom parameters.
// The filter bank and DCT basis are built here, so Compute only reads shared
// state and the value can serve concurrent callers.
func NewMFCCWithParams(params MFCCParams) (*MFCC, error) {
	if params.LifterCoeff <= 0 {
		params.LifterCoeff = 22.0
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// More coefficients than filters cannot exist
	params.NumCoefficients = min(params.NumCoefficients, params.NumFilters)

	filterBank := NewMelScale().CreateMelFilterBank(params.NumFilters, params.FFTSize, params.SampleRate)
	if len(filterBank) == 0 {
		return nil, fmt.Errorf("failed to create mel filter bank")
	}

	numBins := params.FFTSize / 2
	filterMatrix := mat.NewDense(params.NumFilters, numBins, nil)
	for i, filter := range filterBank {
		filterMatrix.SetRow(i, filter)
	}

	return &MFCC{
		params:        params,
		powerSpectrum: NewPowerSpectrum(),
		filterBank:    filterBank,
		filterMatrix:  filterMatrix,
		dct:           NewDCT(params.NumFilters),
	}, nil
}

// Compute calculates the cepstral coefficients of a time-domain frame.
// An empty frame yields an empty result.
func (m *MFCC) Compute(frame []float64) []float64 {
	return m.ComputeDetailed(frame).MFCC
}

// ComputeDetailed is Compute that also returns the mel filter energies
func (m *MFCC) ComputeDetailed(frame []float64) *MFCCResult {
	if len(frame) == 0 {
		return &MFCCResult{MFCC: []float64{}, MelSpectrum: []float64{}}
	}

	power := m.powerSpectrum.Compute(frame)

	// The bank spans FFTSize/2 bins; a frame of another length is truncated
	// or zero-extended onto that grid.
	numBins := m.params.FFTSize / 2
	aligned := make([]float64, numBins)
	copy(aligned, power)

	energies := mat.NewVecDense(m.params.NumFilters, nil)
	energies.MulVec(m.filterMatrix, mat.NewVecDense(numBins, aligned))
	melSpectrum := energies.RawVector().Data

	logMel := make([]float64, len(melSpectrum))
	for i, e := range melSpectrum {
		logMel[i] = math.Log(max(e, m.params.LogFloor))
	}

	cepstrum := m.dct.Transform(logMel)
	coefficients := make([]float64, m.params.NumCoefficients)
	copy(coefficients, cepstrum)

	if m.params.UseLiftering {
		coefficients = m.applyLiftering(coefficients)
	}

	return &MFCCResult{
		MFCC:        coefficients,
		MelSpectrum: melSpectrum,
	}
}

// applyLiftering applies sinusoidal liftering to emphasise higher-order coefficients
func (m *MFCC) applyLiftering(coefficients []float64) []float64 {
	liftered := make([]float64, len(coefficients))

	for i, coeff := range coefficients {
		if i == 0 {
			// C0 is left alone
			liftered[i] = coeff
			continue
		}
		lifter := 1.0 + (m.params.LifterCoeff/2.0)*math.Sin(math.Pi*float64(i)/m.params.LifterCoeff)
		liftered[i] = coeff * lifter
	}

	return liftered
}

// GetFilterBank returns a copy of the mel filter bank
func (m *MFCC) GetFilterBank() [][]float64 {
	bank := make([][]float64, len(m.filterBank))
	for i, row := range m.filterBank {
		bank[i] = append([]float64(nil), row...)
	}
	return bank
}

// GetParams returns the effective MFCC parameters
func (m *MFCC) GetParams() MFCCParams {
	return m.params
}
