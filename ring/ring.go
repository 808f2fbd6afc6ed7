// Package ring implements RNS polynomial arithmetic over
// Z_q[X]/(X^N+1), including the negacyclic NTT, Galois
// automorphisms and uniform sampling.
package ring

import (
	"fmt"
	"math/bits"
	"sync"
)

// Ring is a struct storing precomputation
// for fast modular reduction and NTT for
// a given prime modulus.
type Ring struct {
	NumberTheoreticTransformer

	// Polynomial nb.Coefficients
	N int

	Modulus uint64

	// Unique factors of Modulus-1
	Factors []uint64

	// 2^bit_length(Modulus) - 1
	Mask uint64

	// Fast reduction constants
	BRedConstant [2]uint64 // Barrett Reduction
	MRedConstant uint64    // Montgomery Reduction

	*NTTTable // NTT related constants
}

// NewRing creates a new [Ring] with degree N and prime modulus Modulus,
// supporting the negacyclic NTT with a 2N-th primitive root of unity.
// An error is returned in the case of non NTT-enabling parameters.
func NewRing(N int, Modulus uint64) (r *Ring, err error) {

	// Checks if N is a power of 2
	if N < MinimumRingDegreeForLoopUnrolledOperations || (N&(N-1)) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of 2 greater than %d but is %d", MinimumRingDegreeForLoopUnrolledOperations, N)
	}

	if bits.Len64(Modulus) > 62 {
		return nil, fmt.Errorf("invalid modulus: Modulus uses more than 62 bits")
	}

	r = &Ring{}

	r.N = N

	r.Modulus = Modulus

	r.Mask = (1 << uint64(bits.Len64(Modulus-1))) - 1

	// Computes the fast modular reduction constants for the Ring
	r.BRedConstant = GetBRedConstant(Modulus)

	// If qi is not a power of 2, we can compute the MRed (otherwise, it
	// would return an error as there is no valid Montgomery form mod a power of 2)
	if (Modulus&(Modulus-1)) != 0 && Modulus != 0 {
		r.MRedConstant = GetMRedConstant(Modulus)
	}

	r.NTTTable = new(NTTTable)
	r.NthRoot = uint64(N) << 1

	r.NumberTheoreticTransformer = NewNumberTheoreticTransformerStandard(r, N)

	if err = r.GenNTTTable(); err != nil {
		return nil, err
	}

	return
}

func (r Ring) LogN() int {
	return bits.Len64(uint64(r.N) - 1)
}

func (r Ring) NewPoly() Poly {
	return NewPoly(r.N)
}

// GenNTTTable generates the NTT tables for the target Ring.
// The fields `PrimitiveRoot` and `Factors` can be set manually to
// bypass the search for the primitive root (which requires to
// factor Modulus-1) and speedup the generation of the constants.
func (r *Ring) GenNTTTable() (err error) {

	if r.N == 0 || r.Modulus == 0 {
		return fmt.Errorf("invalid ring parameters (missing)")
	}

	Modulus := r.Modulus
	NthRoot := r.NthRoot

	// Checks that the modulus is prime and equal to 1 mod NthRoot
	if !IsPrime(Modulus) {
		return fmt.Errorf("invalid modulus: %d is not prime", Modulus)
	}

	if Modulus&(NthRoot-1) != 1 {
		return fmt.Errorf("invalid modulus: %d != 1 mod NthRoot=%d", Modulus, NthRoot)
	}

	// It is possible to manually set the primitive root along with the factors of q-1.
	// If both are set, then checks that the root is indeed primitive.
	// Else, factorizes q-1 and finds a primitive root.
	if r.PrimitiveRoot != 0 && r.Factors != nil {
		if err = CheckPrimitiveRoot(r.PrimitiveRoot, Modulus, r.Factors); err != nil {
			return
		}
	} else {
		if r.PrimitiveRoot, r.Factors, err = PrimitiveRoot(Modulus, r.Factors); err != nil {
			return
		}
	}

	logNthRoot := int(bits.Len64(NthRoot>>1) - 1)

	// Computes N^(-1) mod Q in Montgomery form
	r.NInv = MForm(ModExp(NthRoot>>1, Modulus-2, Modulus), Modulus, r.BRedConstant)

	// Computes Psi and PsiInv in Montgomery form
	Psi := ModExp(r.PrimitiveRoot, (Modulus-1)/NthRoot, Modulus)

	PsiMont := MForm(Psi, Modulus, r.BRedConstant)

	// Checks that Psi^{2N} = 1 mod Modulus
	if IMForm(ModExpMontgomery(PsiMont, NthRoot, Modulus, r.MRedConstant, r.BRedConstant), Modulus, r.MRedConstant) != 1 {
		return fmt.Errorf("invalid 2Nth primitive root: psi^{2N} != 1 mod Modulus")
	}

	// Checks that Psi^{N} = -1 mod Modulus
	if IMForm(ModExpMontgomery(PsiMont, NthRoot>>1, Modulus, r.MRedConstant, r.BRedConstant), Modulus, r.MRedConstant) != Modulus-1 {
		return fmt.Errorf("invalid 2Nth primitive root: psi^{N} != -1 mod Modulus")
	}

	PsiInvMont := ModExpMontgomery(PsiMont, Modulus-2, Modulus, r.MRedConstant, r.BRedConstant)

	r.RootsForward = make([]uint64, NthRoot>>1)
	r.RootsBackward = make([]uint64, NthRoot>>1)

	r.RootsForward[0] = MForm(1, Modulus, r.BRedConstant)
	r.RootsBackward[0] = MForm(1, Modulus, r.BRedConstant)

	// Computes RootsForward[j] = RootsForward[j-1]*Psi and RootsBackward[j] = RootsBackward[j-1]*PsiInv,
	// with the roots stored in bit-reversed order.
	for j := uint64(1); j < NthRoot>>1; j++ {

		indexReversePrev := bitReverse(j-1, logNthRoot)
		indexReverseNext := bitReverse(j, logNthRoot)

		r.RootsForward[indexReverseNext] = MRed(r.RootsForward[indexReversePrev], PsiMont, Modulus, r.MRedConstant)
		r.RootsBackward[indexReverseNext] = MRed(r.RootsBackward[indexReversePrev], PsiInvMont, Modulus, r.MRedConstant)
	}

	return
}

type ringCacheKey struct {
	N       int
	Modulus uint64
}

var ringCache sync.Map // map[ringCacheKey]*Ring

// RingFor returns the [Ring] context for the given degree and modulus,
// deriving and caching it on first use. The returned context is shared
// and must be treated as read-only.
func RingFor(N int, Modulus uint64) (*Ring, error) {

	key := ringCacheKey{N: N, Modulus: Modulus}

	if r, ok := ringCache.Load(key); ok {
		return r.(*Ring), nil
	}

	r, err := NewRing(N, Modulus)
	if err != nil {
		return nil, err
	}

	actual, _ := ringCache.LoadOrStore(key, r)

	return actual.(*Ring), nil
}
