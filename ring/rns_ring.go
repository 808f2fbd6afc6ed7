package ring

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/aakennes/hehub/utils"
	"github.com/aakennes/hehub/utils/bignum"
)

// RNSRing is a struct regrouping one [Ring] per prime of an RNS basis,
// all sharing the same ring degree.
type RNSRing []*Ring

// NewRNSRing creates a new [RNSRing] with degree N and coefficient moduli
// Moduli. N must be a power of two larger than 8. Moduli should be a
// non-empty []uint64 with distinct prime elements, all equal to 1 modulo
// 2*N. An error is returned with a nil RNSRing in the case of non
// NTT-enabling parameters. The per-prime contexts are shared with the
// global ring cache.
func NewRNSRing(N int, Moduli []uint64) (r RNSRing, err error) {

	if len(Moduli) == 0 {
		return nil, fmt.Errorf("invalid Moduli (must be a non-empty []uint64)")
	}

	if !utils.AllDistinct(Moduli) {
		return nil, fmt.Errorf("invalid Moduli (moduli are not distinct)")
	}

	r = make([]*Ring, len(Moduli))

	for i := range r {
		if r[i], err = RingFor(N, Moduli[i]); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RNSRingForDimensions returns the [RNSRing] matching the given
// polynomial dimensions, deriving and caching the per-prime contexts
// on first use.
func RNSRingForDimensions(dims PolyDimensions) (RNSRing, error) {

	if err := dims.Validate(); err != nil {
		return nil, err
	}

	return NewRNSRing(dims.N, dims.Moduli)
}

// N returns the ring degree.
func (r RNSRing) N() int {
	return r[0].N
}

// LogN returns log2(ring degree).
func (r RNSRing) LogN() int {
	return bits.Len64(uint64(r.N() - 1))
}

// LogModuli returns the size of the full modulus in bits.
func (r RNSRing) LogModuli() (logmod float64) {
	for _, qi := range r.ModuliChain() {
		logmod += math.Log2(float64(qi))
	}
	return
}

// NthRoot returns the multiplicative order of the primitive root.
func (r RNSRing) NthRoot() uint64 {
	return r[0].NthRoot
}

// Level returns the level of the current ring (number of primes - 1).
func (r RNSRing) Level() int {
	return len(r) - 1
}

// MaxLevel returns the maximum level allowed by the ring (#NbModuli -1).
func (r RNSRing) MaxLevel() int {
	return len(r) - 1
}

// AtLevel returns an instance of the target ring that operates at the
// target level. This instance is thread safe and can be used
// concurrently with the base ring.
func (r RNSRing) AtLevel(level int) RNSRing {

	// Sanity check
	if level < 0 {
		panic("level cannot be negative")
	}

	// Sanity check
	if level > r.MaxLevel() {
		panic("level cannot be larger than max level")
	}

	return r[:level+1]
}

// ModuliChain returns the list of primes in the modulus chain.
func (r RNSRing) ModuliChain() (moduli []uint64) {
	moduli = make([]uint64, len(r))
	for i := range r {
		moduli[i] = r[i].Modulus
	}

	return
}

// OverflowMargin returns the overflow margin of the ring.
func (r RNSRing) OverflowMargin() int {
	return int(math.Exp2(64) / float64(utils.MaxSlice(r.ModuliChain())))
}

// Dimensions returns the [PolyDimensions] spanned by the receiver.
func (r RNSRing) Dimensions() PolyDimensions {
	return PolyDimensions{
		N:      r.N(),
		Limbs:  len(r),
		Moduli: r.ModuliChain(),
	}
}

// NewRNSPoly creates a new [RNSPoly] over the receiver's basis with all
// coefficients set to 0, in Coefficient form.
func (r RNSRing) NewRNSPoly() RNSPoly {
	p, err := NewRNSPoly(r.Dimensions())
	if err != nil {
		// The receiver is a valid ring, so its dimensions are valid.
		panic(err)
	}
	return p
}

// NewMonomialXi returns a polynomial X^{i}.
func (r RNSRing) NewMonomialXi(i int) (p RNSPoly) {

	p = r.NewRNSPoly()

	N := r.N()

	i &= (N << 1) - 1

	if i >= N {
		i -= N << 1
	}

	for k, s := range r {

		if i < 0 {
			p.At(k)[N+i] = s.Modulus - 1
		} else {
			p.At(k)[i] = 1
		}
	}

	return
}

// SetCoefficientsBigint sets the coefficients of p1 from an array of
// Int variables, reducing each one modulo every prime of the basis.
func (r RNSRing) SetCoefficientsBigint(coeffs []big.Int, p1 RNSPoly) {

	QiBigint := new(big.Int)
	coeffTmp := new(big.Int)
	for i, table := range r {

		QiBigint.SetUint64(table.Modulus)

		p1Coeffs := p1.At(i)

		for j := range coeffs {
			p1Coeffs[j] = coeffTmp.Mod(&coeffs[j], QiBigint).Uint64()
		}
	}
}

// PolyToBigintCentered reconstructs p1 and returns the result in an
// array of Int, with coefficients centered around Q/2.
// gap defines coefficients X^{i*gap} that will be reconstructed.
// For example, if gap = 1, then all coefficients are reconstructed,
// while if gap = 2 then only coefficients X^{2*i} are reconstructed.
func (r RNSRing) PolyToBigintCentered(p1 RNSPoly, gap int, values []big.Int) {
	PolyToBigintCentered(r, p1, gap, values)
}

// Equal checks if p1 = p2 in the given Ring.
// Both inputs are reduced in place before the comparison.
func (r RNSRing) Equal(p1, p2 RNSPoly) bool {

	for i := 0; i < r.Level()+1; i++ {
		if len(p1.At(i)) != len(p2.At(i)) {
			return false
		}
	}

	r.Reduce(p1, p1)
	r.Reduce(p2, p2)

	return p1.Equal(&p2)
}

// Modulus returns the full modulus.
// The internal level of the ring is taken into account.
func (r RNSRing) Modulus() (modulus *big.Int) {
	modulus = bignum.NewInt(r[0].Modulus)
	for _, s := range r[1:] {
		modulus.Mul(modulus, bignum.NewInt(s.Modulus))
	}
	return
}
