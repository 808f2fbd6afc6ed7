// Package factorization implements integer factorization routines used
// to derive primitive roots of prime moduli.
package factorization

import (
	"math/big"
)

// smallPrimesBound is the bound under which factors are removed
// by trial division before switching to Pollard's rho.
const smallPrimesBound = 1 << 16

// GetFactors returns the list of distinct prime factors of m.
func GetFactors(m *big.Int) (factors []*big.Int) {

	n := new(big.Int).Set(m)
	one := big.NewInt(1)

	appendFactor := func(f *big.Int) {
		for _, g := range factors {
			if g.Cmp(f) == 0 {
				return
			}
		}
		factors = append(factors, new(big.Int).Set(f))
	}

	// Trial division over small primes.
	r := new(big.Int)
	for p := int64(2); p < smallPrimesBound && n.Cmp(one) > 0; p++ {
		bp := big.NewInt(p)
		if r.Mod(n, bp).Sign() == 0 {
			appendFactor(bp)
			for r.Mod(n, bp).Sign() == 0 {
				n.Quo(n, bp)
			}
		}
	}

	if n.Cmp(one) == 0 {
		return
	}

	// Remaining cofactor: split recursively with Pollard's rho.
	var split func(c *big.Int)
	split = func(c *big.Int) {
		if c.ProbablyPrime(0) {
			appendFactor(c)
			return
		}
		d := pollardRho(c)
		split(d)
		split(new(big.Int).Quo(c, d))
	}
	split(n)

	return
}

// pollardRho returns a non-trivial factor of the composite n using
// Pollard's rho with Brent's cycle detection.
func pollardRho(n *big.Int) *big.Int {

	one := big.NewInt(1)
	two := big.NewInt(2)

	if new(big.Int).Mod(n, two).Sign() == 0 {
		return two
	}

	for c := int64(1); ; c++ {

		ci := big.NewInt(c)
		x := big.NewInt(2)
		y := big.NewInt(2)
		d := big.NewInt(1)
		diff := new(big.Int)

		f := func(z *big.Int) {
			z.Mul(z, z)
			z.Add(z, ci)
			z.Mod(z, n)
		}

		for d.Cmp(one) == 0 {
			f(x)
			f(y)
			f(y)
			diff.Sub(x, y)
			diff.Abs(diff)
			if diff.Sign() == 0 {
				break
			}
			d.GCD(nil, nil, diff, n)
		}

		if d.Cmp(one) > 0 && d.Cmp(n) < 0 {
			return d
		}
	}
}
