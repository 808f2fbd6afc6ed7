package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aakennes/hehub/utils/sampling"
)

func TestRNSPoly(t *testing.T) {

	t.Run("NewRNSPoly", func(t *testing.T) {

		// Degree must be a power of two.
		for _, N := range []int{0, 1, 3, 4095, 4097} {
			_, err := NewRNSPoly(PolyDimensions{N: N, Limbs: 1, Moduli: []uint64{65537}})
			require.Error(t, err)
		}

		// The number of moduli must match the number of limbs.
		_, err := NewRNSPoly(PolyDimensions{N: 16, Limbs: 2, Moduli: []uint64{65537}})
		require.Error(t, err)

		// Moduli must be at least 2.
		_, err = NewRNSPoly(PolyDimensions{N: 16, Limbs: 1, Moduli: []uint64{1}})
		require.Error(t, err)

		p, err := NewRNSPoly(PolyDimensions{N: 4096, Limbs: 2, Moduli: []uint64{65537, 97}})
		require.NoError(t, err)
		require.Equal(t, 4096, p.N())
		require.Equal(t, 12, p.LogN())
		require.Equal(t, 2, p.Limbs())
		require.Equal(t, 1, p.Level())
		require.Equal(t, Coefficient, p.Form)
	})

	t.Run("AddDropLimbs", func(t *testing.T) {

		p, err := NewRNSPoly(PolyDimensions{N: 16, Limbs: 1, Moduli: []uint64{65537}})
		require.NoError(t, err)

		require.Error(t, p.AddLimbs(1))
		require.NoError(t, p.AddLimbs(97, 193))
		require.Equal(t, 3, p.Limbs())
		require.Equal(t, []uint64{65537, 97, 193}, p.Moduli)

		qi, err := p.ModulusAt(2)
		require.NoError(t, err)
		require.Equal(t, uint64(193), qi)

		_, err = p.ModulusAt(3)
		require.Error(t, err)

		// Cannot drop more limbs than the polynomial holds.
		require.Error(t, p.DropLimbs(4))
		require.Error(t, p.DropLimbs(-1))

		require.NoError(t, p.DropLimbs(2))
		require.Equal(t, 1, p.Limbs())
		require.Equal(t, []uint64{65537}, p.Moduli)

		// Dropping exactly all the limbs empties the basis.
		require.NoError(t, p.DropLimbs(1))
		require.Equal(t, 0, p.Limbs())
		require.NoError(t, p.DropLimbs(0))
		require.Error(t, p.DropLimbs(1))
	})

	t.Run("CloneCopyEqual", func(t *testing.T) {

		source := sampling.NewSource([32]byte{7})

		p, err := NewRNSPoly(PolyDimensions{N: 16, Limbs: 2, Moduli: []uint64{65537, 97}})
		require.NoError(t, err)
		p.Randomize(source)

		clone := p.Clone()
		require.True(t, p.Equal(clone))

		// Clone is a deep copy.
		clone.At(0)[0]++
		require.False(t, p.Equal(clone))

		cpy, err := NewRNSPoly(p.Dimensions())
		require.NoError(t, err)
		cpy.Copy(&p)
		require.True(t, p.Equal(&cpy))

		// The form is part of the comparison.
		cpy.Form = Evaluation
		require.False(t, p.Equal(&cpy))

		// Copy rejects mismatched dimensions.
		small, err := NewRNSPoly(PolyDimensions{N: 8, Limbs: 1, Moduli: []uint64{65537}})
		require.NoError(t, err)
		require.Panics(t, func() { small.Copy(&p) })
	})

	t.Run("InfNorm", func(t *testing.T) {

		q := uint64(65537)

		p, err := NewRNSPoly(PolyDimensions{N: 16, Limbs: 1, Moduli: []uint64{q}})
		require.NoError(t, err)

		p.At(0)[0] = 1
		p.At(0)[1] = q - 2 // centered: -2

		norm, err := p.InfNorm()
		require.NoError(t, err)
		require.Equal(t, uint64(2), norm)

		// Rejects non reduced coefficients.
		p.At(0)[2] = q
		_, err = p.InfNorm()
		require.Error(t, err)
		p.At(0)[2] = 0

		// Rejects evaluation form.
		p.Form = Evaluation
		_, err = p.InfNorm()
		require.Error(t, err)
		p.Form = Coefficient

		// Rejects multi-limb polynomials.
		require.NoError(t, p.AddLimbs(97))
		_, err = p.InfNorm()
		require.Error(t, err)
	})
}
