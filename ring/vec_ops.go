package ring

import (
	"fmt"
	"unsafe"
)

const (
	// MinimumRingDegreeForLoopUnrolledOperations is the minimum ring degree
	// necessary for memory safe loop unrolling.
	MinimumRingDegreeForLoopUnrolledOperations = 8
)

// AddVec evaluates p3 = p1 + p2 mod q.
func AddVec(p1, p2, p3 []uint64, q uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot AddVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = CRed(x[0]+y[0], q)
		z[1] = CRed(x[1]+y[1], q)
		z[2] = CRed(x[2]+y[2], q)
		z[3] = CRed(x[3]+y[3], q)
		z[4] = CRed(x[4]+y[4], q)
		z[5] = CRed(x[5]+y[5], q)
		z[6] = CRed(x[6]+y[6], q)
		z[7] = CRed(x[7]+y[7], q)
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = CRed(p1[j]+p2[j], q)
	}
}

// AddLazyVec evaluates p3 = p1 + p2.
func AddLazyVec(p1, p2, p3 []uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot AddLazyVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = x[0] + y[0]
		z[1] = x[1] + y[1]
		z[2] = x[2] + y[2]
		z[3] = x[3] + y[3]
		z[4] = x[4] + y[4]
		z[5] = x[5] + y[5]
		z[6] = x[6] + y[6]
		z[7] = x[7] + y[7]
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = p1[j] + p2[j]
	}
}

// SubVec evaluates p3 = p1 - p2 mod q.
func SubVec(p1, p2, p3 []uint64, q uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot SubVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = CRed(x[0]+q-y[0], q)
		z[1] = CRed(x[1]+q-y[1], q)
		z[2] = CRed(x[2]+q-y[2], q)
		z[3] = CRed(x[3]+q-y[3], q)
		z[4] = CRed(x[4]+q-y[4], q)
		z[5] = CRed(x[5]+q-y[5], q)
		z[6] = CRed(x[6]+q-y[6], q)
		z[7] = CRed(x[7]+q-y[7], q)
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = CRed(p1[j]+q-p2[j], q)
	}
}

// SubLazyVec evaluates p3 = p1 + 2q - p2.
func SubLazyVec(p1, p2, p3 []uint64, q uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot SubLazyVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	twoQ := q << 1

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = x[0] + twoQ - y[0]
		z[1] = x[1] + twoQ - y[1]
		z[2] = x[2] + twoQ - y[2]
		z[3] = x[3] + twoQ - y[3]
		z[4] = x[4] + twoQ - y[4]
		z[5] = x[5] + twoQ - y[5]
		z[6] = x[6] + twoQ - y[6]
		z[7] = x[7] + twoQ - y[7]
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = p1[j] + twoQ - p2[j]
	}
}

// NegVec evaluates p2 = -p1 mod q.
func NegVec(p1, p2 []uint64, q uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot NegVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = q - x[0]
		z[1] = q - x[1]
		z[2] = q - x[2]
		z[3] = q - x[3]
		z[4] = q - x[4]
		z[5] = q - x[5]
		z[6] = q - x[6]
		z[7] = q - x[7]
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = q - p1[j]
	}
}

// BarrettReduceVec evaluates p2 = p1 mod q.
func BarrettReduceVec(p1, p2 []uint64, q uint64, bredconstant [2]uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot BarrettReduceVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = BRedAdd(x[0], q, bredconstant)
		z[1] = BRedAdd(x[1], q, bredconstant)
		z[2] = BRedAdd(x[2], q, bredconstant)
		z[3] = BRedAdd(x[3], q, bredconstant)
		z[4] = BRedAdd(x[4], q, bredconstant)
		z[5] = BRedAdd(x[5], q, bredconstant)
		z[6] = BRedAdd(x[6], q, bredconstant)
		z[7] = BRedAdd(x[7], q, bredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = BRedAdd(p1[j], q, bredconstant)
	}
}

// BarrettReduceLazyVec evaluates p2 = p1 mod q with p2 in the range [0, 2q-1].
func BarrettReduceLazyVec(p1, p2 []uint64, q uint64, bredconstant [2]uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot BarrettReduceLazyVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = BRedAddLazy(x[0], q, bredconstant)
		z[1] = BRedAddLazy(x[1], q, bredconstant)
		z[2] = BRedAddLazy(x[2], q, bredconstant)
		z[3] = BRedAddLazy(x[3], q, bredconstant)
		z[4] = BRedAddLazy(x[4], q, bredconstant)
		z[5] = BRedAddLazy(x[5], q, bredconstant)
		z[6] = BRedAddLazy(x[6], q, bredconstant)
		z[7] = BRedAddLazy(x[7], q, bredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = BRedAddLazy(p1[j], q, bredconstant)
	}
}

// MulCoeffsBarrettVec evaluates p3 = p1 * p2 mod q.
func MulCoeffsBarrettVec(p1, p2, p3 []uint64, q uint64, bredconstant [2]uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot MulCoeffsBarrettVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = BRed(x[0], y[0], q, bredconstant)
		z[1] = BRed(x[1], y[1], q, bredconstant)
		z[2] = BRed(x[2], y[2], q, bredconstant)
		z[3] = BRed(x[3], y[3], q, bredconstant)
		z[4] = BRed(x[4], y[4], q, bredconstant)
		z[5] = BRed(x[5], y[5], q, bredconstant)
		z[6] = BRed(x[6], y[6], q, bredconstant)
		z[7] = BRed(x[7], y[7], q, bredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = BRed(p1[j], p2[j], q, bredconstant)
	}
}

// MulCoeffsMontgomeryVec evaluates p3 = p1 * p2 mod q, with p2 in the
// Montgomery domain.
func MulCoeffsMontgomeryVec(p1, p2, p3 []uint64, q, mredconstant uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N || len(p3) != N {
		panic(fmt.Sprintf("cannot MulCoeffsMontgomeryVec: len(p1)=%d, len(p2)=%d and len(p3)=%d do not match", N, len(p2), len(p3)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		y := (*[8]uint64)(unsafe.Pointer(&p2[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p3)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p3[j]))

		z[0] = MRed(x[0], y[0], q, mredconstant)
		z[1] = MRed(x[1], y[1], q, mredconstant)
		z[2] = MRed(x[2], y[2], q, mredconstant)
		z[3] = MRed(x[3], y[3], q, mredconstant)
		z[4] = MRed(x[4], y[4], q, mredconstant)
		z[5] = MRed(x[5], y[5], q, mredconstant)
		z[6] = MRed(x[6], y[6], q, mredconstant)
		z[7] = MRed(x[7], y[7], q, mredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p3[j] = MRed(p1[j], p2[j], q, mredconstant)
	}
}

// MulScalarMontgomeryReduceVec evaluates p2 = p1 * scalarMont mod q,
// with scalarMont in the Montgomery domain.
func MulScalarMontgomeryReduceVec(p1 []uint64, scalarMont uint64, p2 []uint64, q, mredconstant uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot MulScalarMontgomeryReduceVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = MRed(x[0], scalarMont, q, mredconstant)
		z[1] = MRed(x[1], scalarMont, q, mredconstant)
		z[2] = MRed(x[2], scalarMont, q, mredconstant)
		z[3] = MRed(x[3], scalarMont, q, mredconstant)
		z[4] = MRed(x[4], scalarMont, q, mredconstant)
		z[5] = MRed(x[5], scalarMont, q, mredconstant)
		z[6] = MRed(x[6], scalarMont, q, mredconstant)
		z[7] = MRed(x[7], scalarMont, q, mredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = MRed(p1[j], scalarMont, q, mredconstant)
	}
}

// MulScalarMontgomeryReduceLazyVec evaluates p2 = p1 * scalarMont mod q,
// with scalarMont in the Montgomery domain and p2 in [0, 2q-1].
func MulScalarMontgomeryReduceLazyVec(p1 []uint64, scalarMont uint64, p2 []uint64, q, mredconstant uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot MulScalarMontgomeryReduceLazyVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = MRedLazy(x[0], scalarMont, q, mredconstant)
		z[1] = MRedLazy(x[1], scalarMont, q, mredconstant)
		z[2] = MRedLazy(x[2], scalarMont, q, mredconstant)
		z[3] = MRedLazy(x[3], scalarMont, q, mredconstant)
		z[4] = MRedLazy(x[4], scalarMont, q, mredconstant)
		z[5] = MRedLazy(x[5], scalarMont, q, mredconstant)
		z[6] = MRedLazy(x[6], scalarMont, q, mredconstant)
		z[7] = MRedLazy(x[7], scalarMont, q, mredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = MRedLazy(p1[j], scalarMont, q, mredconstant)
	}
}

// MFormVec evaluates p2 = p1 * 2^64 mod q.
func MFormVec(p1, p2 []uint64, q uint64, bredconstant [2]uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot MFormVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = MForm(x[0], q, bredconstant)
		z[1] = MForm(x[1], q, bredconstant)
		z[2] = MForm(x[2], q, bredconstant)
		z[3] = MForm(x[3], q, bredconstant)
		z[4] = MForm(x[4], q, bredconstant)
		z[5] = MForm(x[5], q, bredconstant)
		z[6] = MForm(x[6], q, bredconstant)
		z[7] = MForm(x[7], q, bredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = MForm(p1[j], q, bredconstant)
	}
}

// IMFormVec evaluates p2 = p1 * (2^64)^-1 mod q.
func IMFormVec(p1, p2 []uint64, q, mredconstant uint64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot IMFormVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	for j := 0; j < N-(N&7); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p1)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&p1[j]))
		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(p2)%8 != 0 */
		z := (*[8]uint64)(unsafe.Pointer(&p2[j]))

		z[0] = IMForm(x[0], q, mredconstant)
		z[1] = IMForm(x[1], q, mredconstant)
		z[2] = IMForm(x[2], q, mredconstant)
		z[3] = IMForm(x[3], q, mredconstant)
		z[4] = IMForm(x[4], q, mredconstant)
		z[5] = IMForm(x[5], q, mredconstant)
		z[6] = IMForm(x[6], q, mredconstant)
		z[7] = IMForm(x[7], q, mredconstant)
	}

	for j := N - (N & 7); j < N; j++ {
		p2[j] = IMForm(p1[j], q, mredconstant)
	}
}

// CenterModVec evaluates p2 = p1 mod q, with output values centered in
// (-q/2, q/2], stored as signed int64.
func CenterModVec(p1 []uint64, q uint64, p2 []int64) {

	N := len(p1)

	// Sanity check
	if len(p2) != N {
		panic(fmt.Sprintf("cannot CenterModVec: len(p1)=%d and len(p2)=%d do not match", N, len(p2)))
	}

	qHalf := q >> 1

	for j := 0; j < N; j++ {
		c := p1[j]
		if c > qHalf {
			p2[j] = int64(c) - int64(q)
		} else {
			p2[j] = int64(c)
		}
	}
}

// ZeroVec sets all values of the vector to zero.
func ZeroVec(p1 []uint64) {
	for i := range p1 {
		p1[i] = 0
	}
}

// OneVec sets all values of the vector to one.
func OneVec(p1 []uint64) {
	for i := range p1 {
		p1[i] = 1
	}
}
