package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// genFixedPoly fills a fresh single-limb polynomial with a fixed
// linear congruential sequence, so that failures are reproducible
// across runs.
func genFixedPoly(t *testing.T, N int, q uint64) RNSPoly {

	p, err := NewRNSPoly(PolyDimensions{N: N, Limbs: 1, Moduli: []uint64{q}})
	require.NoError(t, err)

	seed := uint64(42)
	coeffs := p.At(0)
	for i := range coeffs {
		seed = seed*4985348 + 93479384
		coeffs[i] = seed % (q / 10)
	}

	return p
}

func TestGaloisElements(t *testing.T) {

	t.Run("GaloisElementForRotation", func(t *testing.T) {

		n := 4 // slots for N = 8

		require.Equal(t, uint64(1), GaloisElementForRotation(0, n))
		require.Equal(t, uint64(1), GaloisElementForRotation(n, n))

		// 5^{n-1} mod 2N for a forward rotation by one slot.
		require.Equal(t, ModExpPow2(GaloisGen, uint64(n-1), uint64(4*n)), GaloisElementForRotation(1, n))

		// Negative steps wrap around.
		require.Equal(t, GaloisElementForRotation(n-1, n), GaloisElementForRotation(-1, n))

		// All Galois elements are odd, hence valid automorphism exponents.
		for step := -n; step <= n; step++ {
			require.Equal(t, uint64(1), GaloisElementForRotation(step, n)&1)
		}
	})

	t.Run("GaloisElementForInvolution", func(t *testing.T) {
		require.Equal(t, uint64(15), GaloisElementForInvolution(8))
		require.Equal(t, uint64(2047), GaloisElementForInvolution(1024))
	})

	t.Run("AutomorphismNTTIndex", func(t *testing.T) {

		// Degree must be a power of two.
		_, err := AutomorphismNTTIndex(12, 24, 5)
		require.Error(t, err)

		// Galois elements are odd.
		_, err = AutomorphismNTTIndex(8, 16, 4)
		require.Error(t, err)

		// The identity automorphism maps every evaluation to itself.
		index, err := AutomorphismNTTIndex(8, 16, 1)
		require.NoError(t, err)
		for i, j := range index {
			require.Equal(t, uint64(i), j)
		}
	})
}

func TestAutomorphism(t *testing.T) {

	N := 8
	q := uint64(65537)

	newTestPoly := func(t *testing.T) (coeffs, eval RNSPoly) {
		coeffs = genFixedPoly(t, N, q)
		eval = *coeffs.Clone()
		require.NoError(t, NTTInPlace(&eval))
		return
	}

	t.Run(fmt.Sprintf("Involute/N=%d", N), func(t *testing.T) {

		_, eval := newTestPoly(t)

		conj, err := Involute(eval)
		require.NoError(t, err)
		require.Equal(t, Evaluation, conj.Form)
		require.False(t, eval.Equal(&conj))

		// The involution is its own inverse.
		back, err := Involute(conj)
		require.NoError(t, err)
		require.True(t, eval.Equal(&back))
	})

	t.Run(fmt.Sprintf("Cycle/N=%d", N), func(t *testing.T) {

		n := N >> 1

		_, eval := newTestPoly(t)

		// A full turn is the identity, as is the zero step.
		full, err := Cycle(eval, n)
		require.NoError(t, err)
		require.True(t, eval.Equal(&full))

		zero, err := Cycle(eval, 0)
		require.NoError(t, err)
		require.True(t, eval.Equal(&zero))

		// Steps compose additively mod n.
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {

				pa, err := Cycle(eval, a)
				require.NoError(t, err)

				pab, err := Cycle(pa, b)
				require.NoError(t, err)

				want, err := Cycle(eval, (a+b)%n)
				require.NoError(t, err)

				require.True(t, want.Equal(&pab))
			}
		}
	})

	t.Run(fmt.Sprintf("FormChecked/N=%d", N), func(t *testing.T) {

		coeffs, _ := newTestPoly(t)

		// Automorphisms are only defined on evaluation-form inputs.
		_, err := Involute(coeffs)
		require.Error(t, err)

		_, err = Cycle(coeffs, 1)
		require.Error(t, err)
	})

	t.Run(fmt.Sprintf("InfNormPreserved/N=%d", N), func(t *testing.T) {

		coeffs, eval := newTestPoly(t)

		norm, err := coeffs.InfNorm()
		require.NoError(t, err)

		for step := 0; step < N>>1; step++ {

			rot, err := Cycle(eval, step)
			require.NoError(t, err)

			require.NoError(t, INTTInPlace(&rot))

			rotNorm, err := rot.InfNorm()
			require.NoError(t, err)

			require.Equal(t, norm, rotNorm)
		}

		conj, err := Involute(eval)
		require.NoError(t, err)

		require.NoError(t, INTTInPlace(&conj))

		conjNorm, err := conj.InfNorm()
		require.NoError(t, err)

		require.Equal(t, norm, conjNorm)
	})
}
