package ring

import (
	"math/bits"
	"slices"

	"github.com/aakennes/hehub/utils"
)

// Poly is the structure that contains the coefficients of a
// polynomial modulo a single prime.
type Poly []uint64

// NewPoly creates a new polynomial with N coefficients set to zero.
func NewPoly(N int) Poly {
	return make([]uint64, N)
}

// N returns the number of coefficients of the polynomial.
func (p Poly) N() int {
	return len(p)
}

// LogN returns the base two logarithm of the number of coefficients
// of the polynomial.
func (p Poly) LogN() int {
	return bits.Len64(uint64(p.N()) - 1)
}

// Zero sets all coefficients of the polynomial to zero.
func (p Poly) Zero() {
	ZeroVec(p)
}

// Clone returns a deep copy of the receiver.
func (p Poly) Clone() *Poly {
	pCpy := Poly(slices.Clone(p))
	return &pCpy
}

// Copy copies the coefficients of other on the receiver, up to the
// minimum of both sizes. This method does nothing if the underlying
// arrays are the same.
func (p *Poly) Copy(other *Poly) {
	if !utils.Alias1D(*p, *other) {
		copy(*p, *other)
	}
}

// Equal performs a deep equal.
func (p Poly) Equal(other *Poly) bool {
	return slices.Equal(p, *other)
}
