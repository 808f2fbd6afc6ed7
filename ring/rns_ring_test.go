package ring

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aakennes/hehub/utils/sampling"
)

type testParameters struct {
	logN int
	qi   []uint64
}

// 61-bit NTT-friendly primes, all equal to 1 mod 2^21.
var testModuli = []uint64{0x1fffffffffe00001, 0x1fffffffffc80001, 0x1fffffffffb40001}

var defaultTestParameters = []testParameters{
	{logN: 3, qi: testModuli},  // generic NTT path
	{logN: 5, qi: testModuli},  // loop-unrolled NTT path
	{logN: 10, qi: testModuli}, // production-like degree
}

func testString(opname string, r RNSRing) string {
	return fmt.Sprintf("%s/N=%d/limbs=%d", opname, r.N(), r.Level()+1)
}

type testContext struct {
	ringQ           RNSRing
	uniformSamplerQ *UniformSampler
}

func genTestContext(params testParameters) (tc *testContext, err error) {

	tc = new(testContext)

	if tc.ringQ, err = NewRNSRing(1<<params.logN, params.qi); err != nil {
		return nil, err
	}

	tc.uniformSamplerQ = NewUniformSampler(sampling.NewSource([32]byte{}), tc.ringQ.ModuliChain())

	return
}

func TestRNSRing(t *testing.T) {

	testNewRNSRing(t)

	for _, params := range defaultTestParameters {

		tc, err := genTestContext(params)
		if err != nil {
			t.Fatal(err)
		}

		testModularReduction(tc, t)
		testLazyOps(tc, t)
		testMFormRoundTrip(tc, t)
		testNTTRoundTrip(tc, t)
		testNTTLazyAgainstStrict(tc, t)
		testFormTaggedNTT(tc, t)
		testConcurrentNTT(tc, t)
		testMonomialProduct(tc, t)
		testMulScalarBigint(tc, t)
		testBigintRoundTrip(tc, t)
		testUniformSampler(tc, t)
	}
}

func testNewRNSRing(t *testing.T) {

	t.Run("NewRNSRing", func(t *testing.T) {

		// Non-empty basis
		_, err := NewRNSRing(16, []uint64{})
		require.Error(t, err)

		// Distinct moduli
		_, err = NewRNSRing(16, []uint64{testModuli[0], testModuli[0]})
		require.Error(t, err)

		// Power of two degree
		_, err = NewRNSRing(15, testModuli)
		require.Error(t, err)

		// Prime moduli
		_, err = NewRNSRing(16, []uint64{testModuli[0] - 1})
		require.Error(t, err)

		// Moduli must be 1 mod 2N to support the NTT
		_, err = NewRNSRing(16, []uint64{17})
		require.Error(t, err)

		// Moduli of at most 62 bits
		_, err = NewRNSRing(16, []uint64{0x7fffffffffffffff})
		require.ErrorContains(t, err, "62 bits")

		r, err := NewRNSRing(16, testModuli)
		require.NoError(t, err)
		require.Equal(t, 16, r.N())
		require.Equal(t, len(testModuli)-1, r.Level())
	})
}

func testModularReduction(tc *testContext, t *testing.T) {

	t.Run(testString("ModularReduction", tc.ringQ), func(t *testing.T) {

		source := tc.uniformSamplerQ.GetSource()

		for _, s := range tc.ringQ {

			q := s.Modulus

			bigQ := new(big.Int).SetUint64(q)

			x := []uint64{0, 1, q - 1, q, 2*q - 1, source.Uint64N(q), source.Uint64N(q)}
			y := []uint64{0, 1, q - 1, q, 2*q - 1, source.Uint64N(q), source.Uint64N(q)}

			want := new(big.Int)

			for i := range x {
				for j := range y {

					want.Mul(new(big.Int).SetUint64(x[i]), new(big.Int).SetUint64(y[j]))
					want.Mod(want, bigQ)

					require.Equal(t, want.Uint64(), BRed(x[i], y[j], q, s.BRedConstant))
					require.Equal(t, want.Uint64(), MRed(x[i], MForm(y[j], q, s.BRedConstant), q, s.MRedConstant))
				}
			}
		}
	})
}

func testLazyOps(tc *testContext, t *testing.T) {

	t.Run(testString("LazyOps", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p1, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		p2, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		strict := r.NewRNSPoly()
		lazy := r.NewRNSPoly()

		r.Add(p1, p2, strict)
		r.AddLazy(p1, p2, lazy)
		r.Reduce(lazy, lazy)
		require.True(t, strict.Equal(&lazy))

		r.Sub(p1, p2, strict)
		r.SubLazy(p1, p2, lazy)
		r.Reduce(lazy, lazy)
		require.True(t, strict.Equal(&lazy))

		// Both coefficient products agree.
		mont := r.NewRNSPoly()
		r.MForm(p1, mont)
		r.MulCoeffsMontgomery(mont, p2, strict)
		r.MulCoeffsBarrett(p1, p2, lazy)
		require.True(t, strict.Equal(&lazy))

		// p + (-p) = 0
		zero := r.NewRNSPoly()
		r.Neg(p1, strict)
		r.Add(p1, strict, strict)
		require.True(t, zero.Equal(&strict))

		// CenterMod lifts the residues to (-q/2, q/2].
		for i, s := range r {

			centered := make([]int64, r.N())
			s.CenterMod(p1.At(i), centered)

			q := int64(s.Modulus)
			for j, c := range centered {
				require.LessOrEqual(t, -q/2, c)
				require.LessOrEqual(t, c, q/2)
				require.Equal(t, p1.At(i)[j], uint64((c+q)%q))
			}
		}
	})
}

func testMFormRoundTrip(tc *testContext, t *testing.T) {

	t.Run(testString("MFormRoundTrip", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p1, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		p2 := r.NewRNSPoly()

		r.MForm(p1, p2)
		r.IMForm(p2, p2)

		require.True(t, p1.Equal(&p2))
	})
}

func testNTTRoundTrip(tc *testContext, t *testing.T) {

	t.Run(testString("NTTRoundTrip", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p1, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		p2 := r.NewRNSPoly()

		r.NTT(p1, p2)
		r.INTT(p2, p2)

		require.True(t, p1.Equal(&p2))
	})
}

func testNTTLazyAgainstStrict(tc *testContext, t *testing.T) {

	t.Run(testString("NTTLazyAgainstStrict", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p1, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		strict := r.NewRNSPoly()
		lazy := r.NewRNSPoly()

		r.NTT(p1, strict)
		r.NTTLazy(p1, lazy)

		// Lazy outputs are in [0, 2q-1] and agree after reduction.
		for i, s := range r {
			for _, c := range lazy.At(i) {
				require.Less(t, c, 2*s.Modulus)
			}
		}

		r.Reduce(lazy, lazy)
		require.True(t, strict.Equal(&lazy))

		r.INTT(strict, strict)
		r.INTTLazy(lazy, lazy)
		r.Reduce(lazy, lazy)
		require.True(t, strict.Equal(&lazy))
	})
}

func testFormTaggedNTT(tc *testContext, t *testing.T) {

	t.Run(testString("FormTaggedNTT", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		want := p.Clone()

		require.Equal(t, Coefficient, p.Form)

		// INTT of a coefficient-form poly is rejected.
		require.Error(t, INTTInPlace(&p))

		require.NoError(t, NTTInPlace(&p))
		require.Equal(t, Evaluation, p.Form)

		// NTT of an evaluation-form poly is rejected.
		require.Error(t, NTTInPlace(&p))

		require.NoError(t, INTTInPlace(&p))
		require.Equal(t, Coefficient, p.Form)

		require.True(t, p.Equal(want))

		// The lazy in-place variants flip the form the same way and
		// agree with the strict ones after a reduction pass.
		lazy := want.Clone()
		require.NoError(t, NTTLazyInPlace(lazy))
		require.Equal(t, Evaluation, lazy.Form)
		require.Error(t, NTTLazyInPlace(lazy))

		strict := want.Clone()
		require.NoError(t, NTTInPlace(strict))

		r.Reduce(*lazy, *lazy)
		require.True(t, strict.Equal(lazy))

		require.NoError(t, INTTLazyInPlace(lazy))
		require.Equal(t, Coefficient, lazy.Form)

		r.Reduce(*lazy, *lazy)
		require.True(t, want.Equal(lazy))
	})
}

func testConcurrentNTT(tc *testContext, t *testing.T) {

	t.Run(testString("ConcurrentNTT", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		serial := p.Clone()
		concurrent := p.Clone()

		require.Error(t, NTTInPlaceConcurrent(concurrent, 0))

		require.NoError(t, NTTInPlace(serial))
		require.NoError(t, NTTInPlaceConcurrent(concurrent, 4))

		require.True(t, serial.Equal(concurrent))

		require.NoError(t, INTTInPlace(serial))
		require.NoError(t, INTTInPlaceConcurrent(concurrent, 4))

		require.True(t, serial.Equal(concurrent))
	})
}

func testMonomialProduct(tc *testContext, t *testing.T) {

	t.Run(testString("MonomialProduct", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ
		N := r.N()

		// X^{i} * X^{j} = X^{i+j}, with the negacyclic wrap-around
		// X^{N} = -1 handled by NewMonomialXi.
		for _, i := range []int{1, N / 2, N - 1} {
			for _, j := range []int{1, N / 2, N - 1} {

				p1 := r.NewMonomialXi(i)
				p2 := r.NewMonomialXi(j)
				p3 := r.NewRNSPoly()

				r.NTT(p1, p1)
				r.NTT(p2, p2)
				r.MForm(p1, p1)
				r.MulCoeffsMontgomery(p1, p2, p3)
				r.INTT(p3, p3)

				want := r.NewMonomialXi(i + j)

				require.True(t, want.Equal(&p3))
			}
		}
	})
}

func testMulScalarBigint(tc *testContext, t *testing.T) {

	t.Run(testString("MulScalarBigint", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p1, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		p2 := r.NewRNSPoly()
		p3 := r.NewRNSPoly()

		scalar := uint64(0xdeadbeef)

		r.MulScalar(p1, scalar, p2)
		r.MulScalarBigint(p1, new(big.Int).SetUint64(scalar), p3)

		require.True(t, p2.Equal(&p3))

		// A scalar larger than the full modulus is reduced limb-wise.
		bigScalar := new(big.Int).Mul(r.Modulus(), new(big.Int).SetUint64(3))
		bigScalar.Add(bigScalar, new(big.Int).SetUint64(scalar))

		r.MulScalarBigint(p1, bigScalar, p3)

		require.True(t, p2.Equal(&p3))
	})
}

func testBigintRoundTrip(tc *testContext, t *testing.T) {

	t.Run(testString("BigintRoundTrip", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ
		N := r.N()
		Q := r.Modulus()

		coeffs := make([]big.Int, N)
		for i := range coeffs {
			c, err := rand.Int(rand.Reader, Q)
			require.NoError(t, err)
			coeffs[i].Set(c)
		}

		p := r.NewRNSPoly()
		r.SetCoefficientsBigint(coeffs, p)

		values := make([]big.Int, N)
		r.PolyToBigintCentered(p, 1, values)

		tmp := new(big.Int)
		for i := range values {
			require.Equal(t, 0, tmp.Mod(&values[i], Q).Cmp(&coeffs[i]))
		}
	})
}

func testUniformSampler(tc *testContext, t *testing.T) {

	t.Run(testString("UniformSampler", tc.ringQ), func(t *testing.T) {

		r := tc.ringQ

		p, err := tc.uniformSamplerQ.ReadNew(r.N())
		require.NoError(t, err)

		for i, s := range r {
			for _, c := range p.At(i) {
				require.Less(t, c, s.Modulus)
			}
		}

		// The sampler is deterministic in its seed.
		seed := [32]byte{1, 2, 3}

		q1, err := NewUniformSampler(sampling.NewSource(seed), r.ModuliChain()).ReadNew(r.N())
		require.NoError(t, err)

		q2, err := NewUniformSampler(sampling.NewSource(seed), r.ModuliChain()).ReadNew(r.N())
		require.NoError(t, err)

		require.True(t, q1.Equal(&q2))

		// Randomize draws fresh coefficients and keeps the form.
		q2.Form = Evaluation
		q2.Randomize(sampling.NewSource([32]byte{4, 5, 6}))
		require.Equal(t, Evaluation, q2.Form)
		require.False(t, q1.Equal(&q2))
	})
}
