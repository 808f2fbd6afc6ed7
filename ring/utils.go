package ring

import (
	"math/big"

	"github.com/aakennes/hehub/utils"
	"github.com/aakennes/hehub/utils/bignum"
)

// ModExp returns y = x^e mod q,
// x and q are required to be at most 64 bits to avoid an overflow.
func ModExp(x, e, q uint64) (y uint64) {

	brc := GetBRedConstant(q)

	y = 1

	if q&(q-1) != 0 {

		mrc := GetMRedConstant(q)

		y = MForm(y, q, brc)
		x = MForm(x, q, brc)

		for i := e; i > 0; i >>= 1 {
			if i&1 == 1 {
				y = MRed(y, x, q, mrc)
			}
			x = MRed(x, x, q, mrc)
		}

		return IMForm(y, q, mrc)
	}

	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y = BRed(y, x, q, brc)
		}
		x = BRed(x, x, q, brc)
	}

	return
}

// ModExpMontgomery performs the modular exponentiation x^e mod q,
// where x is in Montgomery form, and returns x^e in Montgomery form.
func ModExpMontgomery(x, e, q, mredconstant uint64, bredconstant [2]uint64) (result uint64) {

	result = MForm(1, q, bredconstant)

	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = MRed(result, x, q, mredconstant)
		}
		x = MRed(x, x, q, mredconstant)
	}
	return result
}

// ModExpPow2 performs the modular exponentiation x^e mod q, where q is a power of 2.
func ModExpPow2(x, e, q uint64) (result uint64) {

	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result *= x
		}
		x *= x
		result &= q - 1
		x &= q - 1
	}
	return result
}

// ModInverse returns x^-1 mod q for a prime q.
func ModInverse(x, q uint64) uint64 {
	return ModExp(x, q-2, q)
}

// bitReverse returns the bit-reversal of x within a window of n bits.
// It panics on invalid inputs as callers are expected to have validated
// the window beforehand.
func bitReverse(x uint64, n int) uint64 {
	y, err := utils.BitReverse64(x, n)
	if err != nil {
		panic(err)
	}
	return y
}

// PolyToBigintCentered reconstructs p mod Q (CRT) and writes the result,
// centered around Q/2, in values.
// gap defines the ratio between the allocated size of values and N: only
// coefficients X^{i*gap} are reconstructed.
func PolyToBigintCentered(r RNSRing, p RNSPoly, gap int, values []big.Int) {

	level := r.Level()

	icrt := make([]big.Int, level+1)

	tmp := new(big.Int)

	Q := r.Modulus()

	qi := new(big.Int)
	for i, s := range r {
		qi.SetUint64(s.Modulus)
		icrt[i].Quo(Q, qi)
		tmp.ModInverse(&icrt[i], qi)
		tmp.Mod(tmp, qi)
		icrt[i].Mul(&icrt[i], tmp)
	}

	QHalf := new(big.Int)
	QHalf.Rsh(Q, 1)

	N := r.N()

	for i, j := 0, 0; j < N; i, j = i+1, j+gap {

		values[i].SetUint64(0)

		for k := 0; k < level+1; k++ {
			values[i].Add(&values[i], tmp.Mul(bignum.NewInt(p.At(k)[j]), &icrt[k]))
		}

		values[i].Mod(&values[i], Q)

		// Centers the coefficients
		if values[i].Cmp(QHalf) > -1 {
			values[i].Sub(&values[i], Q)
		}
	}
}
