package ckks

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/aakennes/hehub/utils"
)

// Stats regroups the precision in bits of the real part, the imaginary
// part and the l2 norm of a decoded vector.
type Stats struct {
	Real float64
	Imag float64
	L2   float64
}

// PrecisionStats is a struct storing statistics about the precision of
// a decoded vector with respect to a reference vector.
type PrecisionStats struct {
	MinPrec    Stats
	MaxPrec    Stats
	MeanPrec   Stats
	MedianPrec Stats
	STDSlots   Stats
}

func (p PrecisionStats) String() string {
	return fmt.Sprintf(`
┌─────────┬───────┬───────┬───────┐
│    Log2 │ REAL  │ IMAG  │ L2    │
├─────────┼───────┼───────┼───────┤
│MIN Prec │ %5.2f │ %5.2f │ %5.2f │
│MAX Prec │ %5.2f │ %5.2f │ %5.2f │
│AVG Prec │ %5.2f │ %5.2f │ %5.2f │
│MED Prec │ %5.2f │ %5.2f │ %5.2f │
└─────────┴───────┴───────┴───────┘
`,
		p.MinPrec.Real, p.MinPrec.Imag, p.MinPrec.L2,
		p.MaxPrec.Real, p.MaxPrec.Imag, p.MaxPrec.L2,
		p.MeanPrec.Real, p.MeanPrec.Imag, p.MeanPrec.L2,
		p.MedianPrec.Real, p.MedianPrec.Imag, p.MedianPrec.L2)
}

// GetPrecisionStats generates a [PrecisionStats] struct from the
// difference between a reference vector and a decoded vector.
func GetPrecisionStats(want, have []complex128) (p PrecisionStats) {

	slots := len(want)

	precReal := make([]float64, slots)
	precImag := make([]float64, slots)
	precL2 := make([]float64, slots)

	for i := range want {
		delta := want[i] - have[i]
		precReal[i] = deltaToPrecision(math.Abs(real(delta)))
		precImag[i] = deltaToPrecision(math.Abs(imag(delta)))
		precL2[i] = deltaToPrecision(cmplx.Abs(delta))
	}

	p.MinPrec = Stats{Real: utils.MinSlice(precReal), Imag: utils.MinSlice(precImag), L2: utils.MinSlice(precL2)}
	p.MaxPrec = Stats{Real: utils.MaxSlice(precReal), Imag: utils.MaxSlice(precImag), L2: utils.MaxSlice(precL2)}
	p.MeanPrec = aggregate(stats.Mean, precReal, precImag, precL2)
	p.MedianPrec = aggregate(stats.Median, precReal, precImag, precL2)
	p.STDSlots = Stats{
		Real: StandardDeviation(precReal, 1),
		Imag: StandardDeviation(precImag, 1),
		L2:   StandardDeviation(precL2, 1),
	}

	return
}

// deltaToPrecision maps an absolute error to a precision in bits,
// saturating at 128 bits for a zero error.
func deltaToPrecision(delta float64) float64 {
	if delta == 0 {
		return 128
	}
	return math.Min(-math.Log2(delta), 128)
}

func aggregate(f func(stats.Float64Data) (float64, error), real, imag, l2 []float64) (s Stats) {
	s.Real, _ = f(real)
	s.Imag, _ = f(imag)
	s.L2, _ = f(l2)
	return
}

// VerifyTestVectors checks that the minimum precision of have with
// respect to want is at least minPrec bits on both the real and the
// imaginary parts.
func VerifyTestVectors(t *testing.T, want, have []complex128, minPrec float64) {
	p := GetPrecisionStats(want, have)
	require.GreaterOrEqual(t, p.MinPrec.Real, minPrec, p.String())
	require.GreaterOrEqual(t, p.MinPrec.Imag, minPrec, p.String())
}
