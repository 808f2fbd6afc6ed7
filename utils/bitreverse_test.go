package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse(t *testing.T) {

	t.Run("Agreement", func(t *testing.T) {

		// Both implementations agree on every width they share.
		for bitLen := 1; bitLen <= 16; bitLen++ {
			t.Run(fmt.Sprintf("bitLen=%d", bitLen), func(t *testing.T) {
				for index := uint64(0); index < 1<<bitLen; index++ {

					want, err := BitReverse64(index, bitLen)
					require.NoError(t, err)

					have, err := BitReverse16(index, bitLen)
					require.NoError(t, err)

					require.Equal(t, want, have)
				}
			})
		}
	})

	t.Run("Involution", func(t *testing.T) {
		for bitLen := 1; bitLen <= 16; bitLen++ {
			for index := uint64(0); index < 1<<bitLen; index++ {

				rev, err := BitReverse64(index, bitLen)
				require.NoError(t, err)

				back, err := BitReverse64(rev, bitLen)
				require.NoError(t, err)

				require.Equal(t, index, back)
			}
		}
	})

	t.Run("InvalidBitLen", func(t *testing.T) {

		_, err := BitReverse64(0, 0)
		require.Error(t, err)

		_, err = BitReverse64(0, 65)
		require.Error(t, err)

		_, err = BitReverse16(0, 0)
		require.Error(t, err)

		_, err = BitReverse16(0, 17)
		require.Error(t, err)
	})

	t.Run("IndexOutOfWindow", func(t *testing.T) {
		for bitLen := 1; bitLen <= 16; bitLen++ {

			_, err := BitReverse64(1<<bitLen, bitLen)
			require.Error(t, err)

			_, err = BitReverse16(1<<bitLen, bitLen)
			require.Error(t, err)
		}
	})

	t.Run("InPlaceSlice", func(t *testing.T) {

		N := 16
		bitLen := 4

		slice := make([]int, N)
		for i := range slice {
			slice[i] = i
		}

		BitReverseInPlaceSlice(slice, N)

		for i := range slice {
			rev, err := BitReverse64(uint64(i), bitLen)
			require.NoError(t, err)
			require.Equal(t, int(rev), slice[i])
		}

		// Applying the permutation twice restores the original order.
		BitReverseInPlaceSlice(slice, N)
		for i := range slice {
			require.Equal(t, i, slice[i])
		}
	})
}
