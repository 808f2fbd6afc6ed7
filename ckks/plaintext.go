package ckks

import (
	"github.com/aakennes/hehub/ring"
)

// Plaintext is a container for an encoded message: an [ring.RNSPoly]
// together with the scaling factor used at encoding time.
type Plaintext struct {
	Poly  ring.RNSPoly
	Scale float64
}

// WithPoly returns a new [Plaintext] wrapping p with the receiver's
// scaling factor. It is used to reattach the scale to a polynomial
// obtained by transforming the receiver's one, e.g. by an automorphism.
func (pt Plaintext) WithPoly(p ring.RNSPoly) *Plaintext {
	return &Plaintext{Poly: p, Scale: pt.Scale}
}

// Level returns the level of the underlying polynomial.
func (pt Plaintext) Level() int {
	return pt.Poly.Level()
}

// Clone returns a deep copy of the receiver.
func (pt Plaintext) Clone() *Plaintext {
	return &Plaintext{Poly: *pt.Poly.Clone(), Scale: pt.Scale}
}
