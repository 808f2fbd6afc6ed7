package ckks

import (
	"math/bits"
	"unsafe"

	"github.com/aakennes/hehub/utils"
)

// MinimumSlotsForLoopUnrolledFFT is the minimum number of slots
// necessary for memory safe loop unrolling of the special FFT.
const MinimumSlotsForLoopUnrolledFFT = 16

// SpecialIFFT evaluates the special inverse FFT of the canonical
// embedding in place on the first N entries of values, dispatching on
// the loop-unrolled implementation when N allows it.
func SpecialIFFT(values []complex128, N, M int, rotGroup []int, roots []complex128) {
	if N < MinimumSlotsForLoopUnrolledFFT {
		SpecialIFFTVec(values, N, M, rotGroup, roots)
	} else {
		SpecialIFFTUnrolled8Vec(values, N, M, rotGroup, roots)
	}
}

// SpecialFFT evaluates the special FFT of the canonical embedding in
// place on the first N entries of values, dispatching on the
// loop-unrolled implementation when N allows it.
func SpecialFFT(values []complex128, N, M int, rotGroup []int, roots []complex128) {
	if N < MinimumSlotsForLoopUnrolledFFT {
		SpecialFFTVec(values, N, M, rotGroup, roots)
	} else {
		SpecialFFTUnrolled8Vec(values, N, M, rotGroup, roots)
	}
}

// SpecialIFFTVec evaluates the special inverse FFT transform in place.
func SpecialIFFTVec(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	logN := int(bits.Len64(uint64(N))) - 1
	logM := int(bits.Len64(uint64(M))) - 1

	for loglen := logN; loglen > 0; loglen-- {
		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1
		for i := 0; i < N; i += len {
			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				values[k], values[k+lenh] = values[k]+values[k+lenh], (values[k]-values[k+lenh])*roots[(lenq-(rotGroup[j]&mask))<<logGap]
			}
		}
	}

	for i := 0; i < N; i++ {
		values[i] /= complex(float64(N), 0)
	}

	utils.BitReverseInPlaceSlice(values, N)
}

// SpecialFFTVec evaluates the special FFT transform in place.
func SpecialFFTVec(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	utils.BitReverseInPlaceSlice(values, N)

	logN := int(bits.Len64(uint64(N))) - 1
	logM := int(bits.Len64(uint64(M))) - 1

	for loglen := 1; loglen <= logN; loglen++ {
		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1
		for i := 0; i < N; i += len {
			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				values[k+lenh] *= roots[(rotGroup[j]&mask)<<logGap]
				values[k], values[k+lenh] = values[k]+values[k+lenh], values[k]-values[k+lenh]
			}
		}
	}
}

// SpecialFFTUnrolled8Vec evaluates the special FFT transform in place
// with unrolled loops of size 8. N must be at least 16.
func SpecialFFTUnrolled8Vec(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	utils.BitReverseInPlaceSlice(values, N)

	logN := int(bits.Len64(uint64(N))) - 1
	logM := int(bits.Len64(uint64(M))) - 1

	for loglen := 1; loglen <= logN; loglen++ {

		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1

		if lenh >= 8 {
			for i := 0; i < N; i += len {

				for j, k := 0, i; j < lenh; j, k = j+8, k+8 {

					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					u := (*[8]complex128)(unsafe.Pointer(&values[k]))
					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					v := (*[8]complex128)(unsafe.Pointer(&values[k+lenh]))
					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					w := (*[8]int)(unsafe.Pointer(&rotGroup[j]))

					v[0] *= roots[(w[0]&mask)<<logGap]
					v[1] *= roots[(w[1]&mask)<<logGap]
					v[2] *= roots[(w[2]&mask)<<logGap]
					v[3] *= roots[(w[3]&mask)<<logGap]
					v[4] *= roots[(w[4]&mask)<<logGap]
					v[5] *= roots[(w[5]&mask)<<logGap]
					v[6] *= roots[(w[6]&mask)<<logGap]
					v[7] *= roots[(w[7]&mask)<<logGap]

					u[0], v[0] = u[0]+v[0], u[0]-v[0]
					u[1], v[1] = u[1]+v[1], u[1]-v[1]
					u[2], v[2] = u[2]+v[2], u[2]-v[2]
					u[3], v[3] = u[3]+v[3], u[3]-v[3]
					u[4], v[4] = u[4]+v[4], u[4]-v[4]
					u[5], v[5] = u[5]+v[5], u[5]-v[5]
					u[6], v[6] = u[6]+v[6], u[6]-v[6]
					u[7], v[7] = u[7]+v[7], u[7]-v[7]
				}
			}
		} else {
			for i := 0; i < N; i += len {
				for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
					values[k+lenh] *= roots[(rotGroup[j]&mask)<<logGap]
					values[k], values[k+lenh] = values[k]+values[k+lenh], values[k]-values[k+lenh]
				}
			}
		}
	}
}

// SpecialIFFTUnrolled8Vec evaluates the special inverse FFT transform
// in place with unrolled loops of size 8. N must be at least 16.
func SpecialIFFTUnrolled8Vec(values []complex128, N, M int, rotGroup []int, roots []complex128) {

	logN := int(bits.Len64(uint64(N))) - 1
	logM := int(bits.Len64(uint64(M))) - 1

	for loglen := logN; loglen > 0; loglen-- {

		len := 1 << loglen
		lenh := len >> 1
		lenq := len << 2
		logGap := logM - 2 - loglen
		mask := lenq - 1

		if lenh >= 8 {
			for i := 0; i < N; i += len {
				for j, k := 0, i; j < lenh; j, k = j+8, k+8 {

					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					u := (*[8]complex128)(unsafe.Pointer(&values[k]))
					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					v := (*[8]complex128)(unsafe.Pointer(&values[k+lenh]))
					/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if lenh%8 != 0 */
					w := (*[8]int)(unsafe.Pointer(&rotGroup[j]))

					u[0], v[0] = u[0]+v[0], (u[0]-v[0])*roots[(lenq-(w[0]&mask))<<logGap]
					u[1], v[1] = u[1]+v[1], (u[1]-v[1])*roots[(lenq-(w[1]&mask))<<logGap]
					u[2], v[2] = u[2]+v[2], (u[2]-v[2])*roots[(lenq-(w[2]&mask))<<logGap]
					u[3], v[3] = u[3]+v[3], (u[3]-v[3])*roots[(lenq-(w[3]&mask))<<logGap]
					u[4], v[4] = u[4]+v[4], (u[4]-v[4])*roots[(lenq-(w[4]&mask))<<logGap]
					u[5], v[5] = u[5]+v[5], (u[5]-v[5])*roots[(lenq-(w[5]&mask))<<logGap]
					u[6], v[6] = u[6]+v[6], (u[6]-v[6])*roots[(lenq-(w[6]&mask))<<logGap]
					u[7], v[7] = u[7]+v[7], (u[7]-v[7])*roots[(lenq-(w[7]&mask))<<logGap]
				}
			}
		} else {
			for i := 0; i < N; i += len {
				for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
					values[k], values[k+lenh] = values[k]+values[k+lenh], (values[k]-values[k+lenh])*roots[(lenq-(rotGroup[j]&mask))<<logGap]
				}
			}
		}
	}

	for i := 0; i < N; i++ {
		values[i] /= complex(float64(N), 0)
	}

	utils.BitReverseInPlaceSlice(values, N)
}
