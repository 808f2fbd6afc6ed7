package ring

import (
	"fmt"
	"math/bits"
	"unsafe"
)

// GaloisGen is an integer of order N/2 modulo 2N that spans Z_{2N}^*
// together with -1. The k-th ring automorphism takes the root zeta to
// zeta^(5^k).
const GaloisGen uint64 = 5

// GaloisElementForRotation returns the Galois element mapping an
// evaluation-form polynomial to the one whose slot vector is rotated
// forward by step positions: slot (i+step) mod n receives the value of
// slot i. n is the number of slots (half the ring degree) and step is
// reduced mod n, so step 0 and step n are the identity.
func GaloisElementForRotation(step, n int) uint64 {
	k := ((n-step)%n + n) % n
	return ModExpPow2(GaloisGen, uint64(k), uint64(n)<<2)
}

// GaloisElementForInvolution returns the Galois element 2N-1 mapping
// an evaluation-form polynomial to its complex conjugate.
func GaloisElementForInvolution(N int) uint64 {
	return uint64(N)<<1 - 1
}

// AutomorphismNTTIndex computes the look-up table for the automorphism
// X^{i} -> X^{i*galEl} of a polynomial in the NTT domain, whose
// evaluations are stored in bit-reversed order.
func AutomorphismNTTIndex(N int, NthRoot, galEl uint64) (index []uint64, err error) {

	if N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of two but is %d", N)
	}

	if galEl&1 == 0 {
		return nil, fmt.Errorf("invalid galois element: must be odd but is %d", galEl)
	}

	var mask, tmp1, tmp2 uint64
	logNthRoot := int(bits.Len64(NthRoot) - 2)
	mask = NthRoot - 1
	index = make([]uint64, N)

	for i := uint64(0); i < uint64(N); i++ {
		tmp1 = 2*bitReverse(i, logNthRoot) + 1
		tmp2 = ((galEl * tmp1 & mask) - 1) >> 1
		index[i] = bitReverse(tmp2, logNthRoot)
	}

	return
}

// AutomorphismNTT applies the automorphism X^{i} -> X^{i*galEl} on a
// polynomial in the NTT domain. It must be noted that the result
// cannot be in-place.
func (r RNSRing) AutomorphismNTT(p1 RNSPoly, galEl uint64, p2 RNSPoly) (err error) {
	var index []uint64
	if index, err = AutomorphismNTTIndex(r.N(), r.NthRoot(), galEl); err != nil {
		return
	}
	r.AutomorphismNTTWithIndex(p1, index, p2)
	return
}

// AutomorphismNTTWithIndex applies the automorphism X^{i} -> X^{i*galEl}
// on a polynomial in the NTT domain using the precomputed look-up table.
// It must be noted that the result cannot be in-place.
func (r RNSRing) AutomorphismNTTWithIndex(p1 RNSPoly, index []uint64, p2 RNSPoly) {

	N := r.N()

	// Sanity check
	if len(index) < N || p1.N() < N || p2.N() < N {
		panic(fmt.Sprintf("cannot AutomorphismNTTWithIndex: ensure that len(index)=%d, p1.N()=%d and p2.N()=%d >= N=%d", len(index), p1.N(), p2.N(), N))
	}

	level := r.Level()

	for j := 0; j < N; j = j + 8 {

		/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if len(index)%8 != 0 */
		x := (*[8]uint64)(unsafe.Pointer(&index[j]))

		for i := 0; i < level+1; i++ {

			/* #nosec G103 -- behavior and consequences well understood, possible buffer overflow if p2.N()%8 != 0 */
			z := (*[8]uint64)(unsafe.Pointer(&p2.At(i)[j]))
			y := p1.At(i)

			z[0] = y[x[0]]
			z[1] = y[x[1]]
			z[2] = y[x[2]]
			z[3] = y[x[3]]
			z[4] = y[x[4]]
			z[5] = y[x[5]]
			z[6] = y[x[6]]
			z[7] = y[x[7]]
		}
	}
}

// Involute returns the complex conjugation of p, i.e. the automorphism
// X^{i} -> X^{-i}. The input must be in Evaluation form; the output is
// a fresh polynomial in Evaluation form over the same basis.
func Involute(p RNSPoly) (RNSPoly, error) {
	return automorphismNew(p, GaloisElementForInvolution(p.N()))
}

// Cycle returns the polynomial whose slot vector is the one of p
// rotated forward by step positions: slot (i+step) mod n receives the
// value of slot i, with n = N/2 slots. The input must be in Evaluation
// form; the output is a fresh polynomial in Evaluation form over the
// same basis. Step is reduced mod n, so step 0 and step n are the
// identity.
func Cycle(p RNSPoly, step int) (RNSPoly, error) {
	return automorphismNew(p, GaloisElementForRotation(step, p.N()>>1))
}

func automorphismNew(p RNSPoly, galEl uint64) (RNSPoly, error) {

	if p.Form != Evaluation {
		return RNSPoly{}, fmt.Errorf("cannot apply automorphism: polynomial is in %s form, expected %s", p.Form, Evaluation)
	}

	r, err := RNSRingForDimensions(p.Dimensions())
	if err != nil {
		return RNSPoly{}, err
	}

	out := r.NewRNSPoly()
	out.Form = Evaluation

	if err = r.AutomorphismNTT(p, galEl, out); err != nil {
		return RNSPoly{}, err
	}

	return out, nil
}
