package utils

import (
	"fmt"
)

// byteRevTable[b] is the bit-reversal of the byte b.
var byteRevTable = func() (t [256]uint8) {
	for b := range t {
		var r uint8
		for i := 0; i < 8; i++ {
			r |= uint8(b>>i&1) << (7 - i)
		}
		t[b] = r
	}
	return
}()

// BitReverse64 returns the bit-reversal of index within a window of bitLen
// bits. It is the reference implementation, valid for any 1 <= bitLen <= 64,
// and returns an error if bitLen is out of range or if index does not fit
// in bitLen bits.
func BitReverse64(index uint64, bitLen int) (uint64, error) {
	if bitLen < 1 || bitLen > 64 {
		return 0, fmt.Errorf("invalid bitLen: must be 1 <= bitLen=%d <= 64", bitLen)
	}
	if bitLen < 64 && index >= 1<<bitLen {
		return 0, fmt.Errorf("invalid index: index=%d >= 2^bitLen=%d", index, uint64(1)<<bitLen)
	}
	var rev uint64
	for i := 0; i < bitLen; i++ {
		rev = (rev << 1) | (index>>i)&1
	}
	return rev, nil
}

// BitReverseInPlaceSlice applies an in-place bit-reversal permutation
// on the first N elements of the slice. N must be a power of two.
func BitReverseInPlaceSlice[V any](slice []V, N int) {

	var bit, j int

	for i := 1; i < N; i++ {

		bit = N >> 1

		for ; j >= bit; bit >>= 1 {
			j -= bit
		}

		j += bit

		if i < j {
			slice[i], slice[j] = slice[j], slice[i]
		}
	}
}

// BitReverse16 returns the bit-reversal of index within a window of bitLen
// bits, specialized to bitLen <= 16 using a byte lookup table. It agrees
// with [BitReverse64] on the shared domain and has the same error contract.
func BitReverse16(index uint64, bitLen int) (uint64, error) {
	if bitLen < 1 || bitLen > 16 {
		return 0, fmt.Errorf("invalid bitLen: must be 1 <= bitLen=%d <= 16", bitLen)
	}
	if index >= 1<<bitLen {
		return 0, fmt.Errorf("invalid index: index=%d >= 2^bitLen=%d", index, uint64(1)<<bitLen)
	}
	rev := uint64(byteRevTable[index&0xff])<<8 | uint64(byteRevTable[index>>8&0xff])
	return rev >> (16 - bitLen), nil
}
