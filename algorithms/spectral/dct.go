package spectral

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCT is a DCT-II of fixed length M with the convention
//
//	out[k] = sqrt(pi/(2M)) * sum_n in[n] * cos(pi*k*(2n+1) / (4M))
//
// The basis is precomputed once; Transform is read-only afterwards.
type DCT struct {
	size  int
	basis *mat.Dense
}

// NewDCT creates a DCT-II of the given length
func NewDCT(size int) *DCT {
	d := &DCT{size: size}
	if size <= 0 {
		return d
	}

	scale := math.Sqrt(math.Pi / (2.0 * float64(size)))
	d.basis = mat.NewDense(size, size, nil)

	for k := range size {
		for n := range size {
			angle := math.Pi * float64(k) * float64(2*n+1) / (4.0 * float64(size))
			d.basis.Set(k, n, scale*math.Cos(angle))
		}
	}

	return d
}

// Size returns the transform length
func (d *DCT) Size() int {
	return d.size
}

// Transform applies the DCT to input, which must have length Size.
// A length mismatch or an empty transform yields an empty result.
func (d *DCT) Transform(input []float64) []float64 {
	if d.size == 0 || len(input) != d.size {
		return []float64{}
	}

	in := mat.NewVecDense(d.size, append([]float64(nil), input...))
	out := mat.NewVecDense(d.size, nil)
	out.MulVec(d.basis, in)

	return out.RawVector().Data
}

// ComputeDCT is a one-shot DCT-II of input
func ComputeDCT(input []float64) []float64 {
	return NewDCT(len(input)).Transform(input)
}
