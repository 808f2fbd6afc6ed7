package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {

	seed := [32]byte{0xde, 0xad, 0xbe, 0xef}

	t.Run("Deterministic", func(t *testing.T) {

		s1 := NewSource(seed)
		s2 := NewSource(seed)

		for i := 0; i < 128; i++ {
			require.Equal(t, s1.Uint64(), s2.Uint64())
		}

		require.Equal(t, seed, s1.Seed())
	})

	t.Run("Reset", func(t *testing.T) {

		s := NewSource(seed)

		want := make([]uint64, 16)
		for i := range want {
			want[i] = s.Uint64()
		}

		s.Reset()

		for i := range want {
			require.Equal(t, want[i], s.Uint64())
		}
	})

	t.Run("Fork", func(t *testing.T) {

		s := NewSource(seed)
		fork := s.NewSource()

		require.NotEqual(t, s.Seed(), fork.Seed())

		// Forking is itself deterministic.
		s2 := NewSource(seed)
		fork2 := s2.NewSource()

		require.Equal(t, fork.Seed(), fork2.Seed())
		require.Equal(t, fork.Uint64(), fork2.Uint64())
	})

	t.Run("Uint64N", func(t *testing.T) {

		s := NewSource(seed)

		for _, n := range []uint64{1, 2, 3, 17, 1 << 32, 65537} {
			for i := 0; i < 64; i++ {
				require.Less(t, s.Uint64N(n), n)
			}
		}

		require.Panics(t, func() { s.Uint64N(0) })
	})

	t.Run("Float64", func(t *testing.T) {

		s := NewSource(seed)

		for i := 0; i < 128; i++ {
			f := s.Float64(-1, 1)
			require.GreaterOrEqual(t, f, -1.0)
			require.Less(t, f, 1.0)
		}

		for i := 0; i < 128; i++ {
			c := s.Complex128(0, 2)
			require.GreaterOrEqual(t, real(c), 0.0)
			require.Less(t, real(c), 2.0)
			require.GreaterOrEqual(t, imag(c), 0.0)
			require.Less(t, imag(c), 2.0)
		}
	})
}
