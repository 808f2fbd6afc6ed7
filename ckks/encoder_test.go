package ckks

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aakennes/hehub/ring"
	"github.com/aakennes/hehub/utils"
	"github.com/aakennes/hehub/utils/bignum"
	"github.com/aakennes/hehub/utils/sampling"
)

// 56-bit prime equal to 1 mod 2^16.
var testPrime56 = uint64(36028797017456641)

// 61-bit primes equal to 1 mod 2^21.
var testModuli61 = []uint64{0x1fffffffffe00001, 0x1fffffffffc80001, 0x1fffffffffb40001}

type encoderTestParameters struct {
	logN    int
	prec    uint
	moduli  []uint64
	scale   float64
	minPrec float64
}

var encoderTestParams = []encoderTestParameters{
	{logN: 3, prec: 0, moduli: []uint64{testPrime56}, scale: math.Exp2(50), minPrec: 45},
	{logN: 5, prec: 0, moduli: testModuli61, scale: math.Exp2(55), minPrec: 45},
	// The decoded vector is a []complex128, so the measurable precision
	// is capped by its 53-bit mantissa even when the embedding runs at
	// 128 bits.
	{logN: 4, prec: 128, moduli: testModuli61, scale: math.Exp2(110), minPrec: 48},
}

func testString(opname string, params encoderTestParameters) string {
	return fmt.Sprintf("%s/logN=%d/limbs=%d/prec=%d", opname, params.logN, len(params.moduli), params.prec)
}

func dimensions(params encoderTestParameters) ring.PolyDimensions {
	return ring.PolyDimensions{
		N:      1 << params.logN,
		Limbs:  len(params.moduli),
		Moduli: params.moduli,
	}
}

func TestEncoder(t *testing.T) {

	testNewEncoder(t)
	testFixedPointCRT(t)

	for _, params := range encoderTestParams {

		ecd, err := NewEncoder(params.logN, params.prec)
		if err != nil {
			t.Fatal(err)
		}

		testRoundTrip(ecd, params, t)
		testEncodeErrors(ecd, params, t)
		testConjugation(ecd, params, t)
		testRotation(ecd, params, t)
	}
}

func testNewEncoder(t *testing.T) {

	t.Run("NewEncoder", func(t *testing.T) {

		_, err := NewEncoder(MinLogN-1, 0)
		require.Error(t, err)

		_, err = NewEncoder(MaxLogN+1, 0)
		require.Error(t, err)

		ecd, err := NewEncoder(4, 0)
		require.NoError(t, err)
		require.Equal(t, 4, ecd.LogN())
		require.Equal(t, DefaultPrecision, ecd.Prec())
		require.Equal(t, 8, ecd.Slots())
	})
}

func testRoundTrip(ecd *Encoder, params encoderTestParameters, t *testing.T) {

	t.Run(testString("RoundTrip", params), func(t *testing.T) {

		source := sampling.NewSource([32]byte{0x01})

		values := make([]complex128, ecd.Slots())
		for i := range values {
			values[i] = source.Complex128(-1, 1)
		}

		pt, err := ecd.Encode(values, params.scale, dimensions(params))
		require.NoError(t, err)
		require.Equal(t, ring.Coefficient, pt.Poly.Form)
		require.Equal(t, params.scale, pt.Scale)

		have, err := ecd.Decode(pt)
		require.NoError(t, err)

		VerifyTestVectors(t, values, have, params.minPrec)

		// Decoding an evaluation-form polynomial is rejected.
		evalPoly := *pt.Poly.Clone()
		require.NoError(t, ring.NTTInPlace(&evalPoly))

		_, err = ecd.Decode(pt.WithPoly(evalPoly))
		require.Error(t, err)

		// Shorter inputs are zero padded.
		short, err := ecd.Encode(values[:1], params.scale, dimensions(params))
		require.NoError(t, err)

		haveShort, err := ecd.Decode(short)
		require.NoError(t, err)

		want := make([]complex128, ecd.Slots())
		want[0] = values[0]
		VerifyTestVectors(t, want, haveShort, params.minPrec)
	})
}

func testEncodeErrors(ecd *Encoder, params encoderTestParameters, t *testing.T) {

	t.Run(testString("Errors", params), func(t *testing.T) {

		values := make([]complex128, ecd.Slots())

		// Too many values for the number of slots.
		_, err := ecd.Encode(make([]complex128, ecd.Slots()+1), params.scale, dimensions(params))
		require.Error(t, err)

		// Zero and negative scales are rejected.
		_, err = ecd.Encode(values, 0, dimensions(params))
		require.Error(t, err)

		_, err = ecd.Encode(values, -1, dimensions(params))
		require.Error(t, err)

		// Mismatched ring degree.
		badDims := dimensions(params)
		badDims.N <<= 1
		_, err = ecd.Encode(values, params.scale, badDims)
		require.Error(t, err)

		pt, err := ecd.Encode(values, params.scale, dimensions(params))
		require.NoError(t, err)

		pt.Scale = 0
		_, err = ecd.Decode(pt)
		require.Error(t, err)
	})
}

func testConjugation(ecd *Encoder, params encoderTestParameters, t *testing.T) {

	t.Run(testString("Conjugation", params), func(t *testing.T) {

		source := sampling.NewSource([32]byte{0x02})

		values := make([]complex128, ecd.Slots())
		for i := range values {
			values[i] = source.Complex128(-1, 1)
		}

		pt, err := ecd.Encode(values, params.scale, dimensions(params))
		require.NoError(t, err)

		eval := *pt.Poly.Clone()
		require.NoError(t, ring.NTTInPlace(&eval))

		conj, err := ring.Involute(eval)
		require.NoError(t, err)

		require.NoError(t, ring.INTTInPlace(&conj))

		have, err := ecd.Decode(pt.WithPoly(conj))
		require.NoError(t, err)

		want := make([]complex128, len(values))
		for i := range values {
			want[i] = complex(real(values[i]), -imag(values[i]))
		}

		VerifyTestVectors(t, want, have, params.minPrec)
	})
}

func testRotation(ecd *Encoder, params encoderTestParameters, t *testing.T) {

	t.Run(testString("Rotation", params), func(t *testing.T) {

		source := sampling.NewSource([32]byte{0x03})

		slots := ecd.Slots()

		values := make([]complex128, slots)
		for i := range values {
			values[i] = source.Complex128(-1, 1)
		}

		pt, err := ecd.Encode(values, params.scale, dimensions(params))
		require.NoError(t, err)

		eval := *pt.Poly.Clone()
		require.NoError(t, ring.NTTInPlace(&eval))

		for _, step := range []int{1, 2, slots - 1, slots} {

			rot, err := ring.Cycle(eval, step)
			require.NoError(t, err)

			require.NoError(t, ring.INTTInPlace(&rot))

			have, err := ecd.Decode(pt.WithPoly(rot))
			require.NoError(t, err)

			// Slot (i+step) mod slots receives the value of slot i,
			// which is a rotation of the slot vector by -step.
			want := utils.RotateSliceNew(values, -step)

			VerifyTestVectors(t, want, have, params.minPrec)
		}
	})
}

func testFixedPointCRT(t *testing.T) {

	t.Run("FixedPointCRT", func(t *testing.T) {

		r, err := ring.NewRNSRing(16, testModuli61)
		require.NoError(t, err)

		p := r.NewRNSPoly()

		scale := math.Exp2(20)
		values := []float64{0, 1.25, -1.25, 0.5}

		Float64ToFixedPointCRT(r, values, scale, p)

		for j, qi := range r.ModuliChain() {
			require.Equal(t, uint64(0), p.At(j)[0])
			require.Equal(t, uint64(math.Round(1.25*scale)), p.At(j)[1])
			require.Equal(t, qi-uint64(math.Round(1.25*scale)), p.At(j)[2])
			require.Equal(t, uint64(math.Round(0.5*scale)), p.At(j)[3])

			// The tail is zero padded.
			for i := len(values); i < r.N(); i++ {
				require.Equal(t, uint64(0), p.At(j)[i])
			}
		}

		// Values above 2^64 take the arbitrary precision path.
		SingleFloat64ToFixedPointCRT(r, 0, math.Exp2(70), 1, p)

		x := new(big.Int).Lsh(big.NewInt(1), 70)
		tmp := new(big.Int)

		for j, qi := range r.ModuliChain() {
			require.Equal(t, tmp.Mod(x, new(big.Int).SetUint64(qi)).Uint64(), p.At(j)[0])
		}

		SingleFloat64ToFixedPointCRT(r, 0, -math.Exp2(70), 1, p)

		for j, qi := range r.ModuliChain() {
			require.Equal(t, qi-tmp.Mod(x, new(big.Int).SetUint64(qi)).Uint64(), p.At(j)[0])
		}
	})

	t.Run("FixedPointCRTArbitrary", func(t *testing.T) {

		r, err := ring.NewRNSRing(16, testModuli61)
		require.NoError(t, err)

		p := r.NewRNSPoly()

		prec := uint(128)
		scale := bignum.NewFloat(math.Exp2(55), prec)

		values := make([]bignum.Complex, r.N()>>1)
		require.NoError(t, bignum.ToComplexSlice([]complex128{-0.5, complex(0.25, -0.75)}, prec, values))

		ComplexArbitraryToFixedPointCRT(r, values, scale, p)

		slots := len(values)

		for j, qi := range r.ModuliChain() {

			// Negative values map to the Euclidean residue qi - |c|.
			require.Equal(t, qi-uint64(1<<54), p.At(j)[0])
			require.Equal(t, uint64(1<<53), p.At(j)[1])
			require.Equal(t, uint64(0), p.At(j)[slots])
			require.Equal(t, qi-uint64(3<<53), p.At(j)[slots+1])

			// All residues are strictly reduced.
			for i := 0; i < r.N(); i++ {
				require.Less(t, p.At(j)[i], qi)
			}
		}
	})
}
