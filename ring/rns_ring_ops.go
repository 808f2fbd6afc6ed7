package ring

import (
	"math/big"

	"github.com/aakennes/hehub/utils/bignum"
)

// Add evaluates p3 = p1 + p2 coefficient-wise in the ring.
func (r RNSRing) Add(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.Add(p1.At(i), p2.At(i), p3.At(i))
	}
}

// AddLazy evaluates p3 = p1 + p2 coefficient-wise in the ring, with p3 in [0, 2*modulus-1].
func (r RNSRing) AddLazy(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.AddLazy(p1.At(i), p2.At(i), p3.At(i))
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise in the ring.
func (r RNSRing) Sub(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.Sub(p1.At(i), p2.At(i), p3.At(i))
	}
}

// SubLazy evaluates p3 = p1 - p2 coefficient-wise in the ring, with p3 in [0, 2*modulus-1].
func (r RNSRing) SubLazy(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.SubLazy(p1.At(i), p2.At(i), p3.At(i))
	}
}

// Neg evaluates p2 = -p1 coefficient-wise in the ring.
func (r RNSRing) Neg(p1, p2 RNSPoly) {
	for i, s := range r {
		s.Neg(p1.At(i), p2.At(i))
	}
}

// Reduce evaluates p2 = p1 coefficient-wise mod modulus in the ring.
func (r RNSRing) Reduce(p1, p2 RNSPoly) {
	for i, s := range r {
		s.Reduce(p1.At(i), p2.At(i))
	}
}

// MulCoeffsBarrett evaluates p3 = p1 * p2 coefficient-wise in the ring, with Barrett reduction.
func (r RNSRing) MulCoeffsBarrett(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.MulCoeffsBarrett(p1.At(i), p2.At(i), p3.At(i))
	}
}

// MulCoeffsMontgomery evaluates p3 = p1 * p2 coefficient-wise in the ring, with Montgomery
// reduction. p2 is expected to be in Montgomery form.
func (r RNSRing) MulCoeffsMontgomery(p1, p2, p3 RNSPoly) {
	for i, s := range r {
		s.MulCoeffsMontgomery(p1.At(i), p2.At(i), p3.At(i))
	}
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r RNSRing) MulScalar(p1 RNSPoly, scalar uint64, p2 RNSPoly) {
	for i, s := range r {
		s.MulScalarMontgomery(p1.At(i), MForm(scalar, s.Modulus, s.BRedConstant), p2.At(i))
	}
}

// MulScalarBigint evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r RNSRing) MulScalarBigint(p1 RNSPoly, scalar *big.Int, p2 RNSPoly) {
	scalarQi := new(big.Int)
	for i, s := range r {
		scalarQi.Mod(scalar, bignum.NewInt(s.Modulus))
		s.MulScalarMontgomery(p1.At(i), MForm(scalarQi.Uint64(), s.Modulus, s.BRedConstant), p2.At(i))
	}
}

// MForm evaluates p2 = p1 * 2^64 coefficient-wise in the ring.
func (r RNSRing) MForm(p1, p2 RNSPoly) {
	for i, s := range r {
		s.MForm(p1.At(i), p2.At(i))
	}
}

// IMForm evaluates p2 = p1 * (2^64)^-1 coefficient-wise in the ring.
func (r RNSRing) IMForm(p1, p2 RNSPoly) {
	for i, s := range r {
		s.IMForm(p1.At(i), p2.At(i))
	}
}

// NTT evaluates p2 = NTT(p1) limb-wise. The [Form] tags are not
// inspected; see [NTTInPlace] for the checked entry point.
func (r RNSRing) NTT(p1, p2 RNSPoly) {
	for i, s := range r {
		s.NTT(p1.At(i), p2.At(i))
	}
}

// NTTLazy evaluates p2 = NTT(p1) limb-wise, with p2 in [0, 2*modulus-1].
func (r RNSRing) NTTLazy(p1, p2 RNSPoly) {
	for i, s := range r {
		s.NTTLazy(p1.At(i), p2.At(i))
	}
}

// INTT evaluates p2 = INTT(p1) limb-wise.
func (r RNSRing) INTT(p1, p2 RNSPoly) {
	for i, s := range r {
		s.INTT(p1.At(i), p2.At(i))
	}
}

// INTTLazy evaluates p2 = INTT(p1) limb-wise, with p2 in [0, 2*modulus-1].
func (r RNSRing) INTTLazy(p1, p2 RNSPoly) {
	for i, s := range r {
		s.INTTLazy(p1.At(i), p2.At(i))
	}
}
