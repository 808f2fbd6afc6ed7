package ring

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/aakennes/hehub/utils"
	"github.com/aakennes/hehub/utils/structs"
)

// Form tags the representation of an [RNSPoly].
type Form uint8

const (
	// Coefficient indicates that the polynomial stores plain
	// coefficients in Z_q[X]/(X^N+1).
	Coefficient Form = iota
	// Evaluation indicates that the polynomial stores NTT
	// evaluations, in bit-reversed order.
	Evaluation
)

func (f Form) String() string {
	switch f {
	case Coefficient:
		return "Coefficient"
	case Evaluation:
		return "Evaluation"
	default:
		return fmt.Sprintf("Form(%d)", uint8(f))
	}
}

// PolyDimensions describes the shape of an [RNSPoly]: the ring degree
// and the RNS basis.
type PolyDimensions struct {
	N      int
	Limbs  int
	Moduli []uint64
}

// Validate returns an error unless N is a power of two greater than
// one, the number of moduli matches Limbs and every modulus is > 1.
func (d PolyDimensions) Validate() error {

	if d.N < 2 || d.N&(d.N-1) != 0 {
		return fmt.Errorf("invalid dimensions: N=%d is not a power of two greater than one", d.N)
	}

	if len(d.Moduli) != d.Limbs {
		return fmt.Errorf("invalid dimensions: len(Moduli)=%d != Limbs=%d", len(d.Moduli), d.Limbs)
	}

	for i, qi := range d.Moduli {
		if qi < 2 {
			return fmt.Errorf("invalid dimensions: modulus %d at index %d is smaller than 2", qi, i)
		}
	}

	return nil
}

// Equal performs a deep equal.
func (d PolyDimensions) Equal(other PolyDimensions) bool {
	return cmp.Equal(d, other)
}

// RNSPoly is the structure that contains the coefficients of an RNS
// polynomial, one limb per prime modulus, together with the basis and
// the representation form.
type RNSPoly struct {
	Coeffs []Poly
	Moduli []uint64
	Form   Form
}

// NewRNSPoly creates a new polynomial of the given dimensions, with
// all coefficients set to zero and in Coefficient form.
func NewRNSPoly(dims PolyDimensions) (p RNSPoly, err error) {

	if err = dims.Validate(); err != nil {
		return RNSPoly{}, fmt.Errorf("NewRNSPoly: %w", err)
	}

	buf := make([]uint64, dims.N*dims.Limbs)

	p.Coeffs = make([]Poly, dims.Limbs)
	for i := range p.Coeffs {
		p.Coeffs[i] = buf[i*dims.N : (i+1)*dims.N]
	}

	p.Moduli = slices.Clone(dims.Moduli)
	p.Form = Coefficient

	return
}

// At returns the i-th limb of the receiver.
func (p RNSPoly) At(i int) Poly {
	if i > p.Level() {
		panic(fmt.Errorf("i > p.Level()"))
	}
	return p.Coeffs[i]
}

// ModulusAt returns the modulus of the i-th limb.
func (p RNSPoly) ModulusAt(i int) (uint64, error) {
	if i < 0 || i >= len(p.Moduli) {
		return 0, fmt.Errorf("limb index %d out of range [0, %d]", i, len(p.Moduli)-1)
	}
	return p.Moduli[i], nil
}

// N returns the number of coefficients of the polynomial, which equals
// the degree of the ring cyclotomic polynomial.
func (p RNSPoly) N() int {
	if len(p.Coeffs) == 0 {
		return 0
	}
	return p.Coeffs[0].N()
}

// LogN returns the base two logarithm of the number of coefficients of
// the polynomial.
func (p RNSPoly) LogN() int {
	return bits.Len64(uint64(p.N()) - 1)
}

// Level returns the current number of limbs minus 1.
func (p RNSPoly) Level() int {
	return len(p.Coeffs) - 1
}

// Limbs returns the current number of limbs.
func (p RNSPoly) Limbs() int {
	return len(p.Coeffs)
}

// Dimensions returns the [PolyDimensions] of the receiver.
func (p RNSPoly) Dimensions() PolyDimensions {
	return PolyDimensions{
		N:      p.N(),
		Limbs:  p.Limbs(),
		Moduli: slices.Clone(p.Moduli),
	}
}

// Zero sets all coefficients of the target polynomial to 0.
func (p RNSPoly) Zero() {
	for i := range p.Coeffs {
		ZeroVec(p.At(i))
	}
}

// Ones sets all coefficients of the target polynomial to 1.
func (p RNSPoly) Ones() {
	for i := range p.Coeffs {
		OneVec(p.At(i))
	}
}

// Equal performs a bit-exact comparison, including the moduli and the
// representation form.
func (p RNSPoly) Equal(other *RNSPoly) bool {
	return p.Form == other.Form &&
		slices.Equal(p.Moduli, other.Moduli) &&
		structs.Vector[Poly](p.Coeffs).Equal(structs.Vector[Poly](other.Coeffs))
}

// Clone returns a deep copy of the receiver. Plain struct assignment
// shares the backing arrays.
func (p RNSPoly) Clone() *RNSPoly {
	return &RNSPoly{
		Coeffs: structs.Vector[Poly](p.Coeffs).Clone(),
		Moduli: slices.Clone(p.Moduli),
		Form:   p.Form,
	}
}

// Copy copies the coefficients, moduli and form of p1 on the receiver.
// Expects the dimensions of both polynomials to be identical. This
// method does nothing on the coefficients if the underlying arrays are
// the same.
func (p *RNSPoly) Copy(p1 *RNSPoly) {

	if p.N() != p1.N() || p.Limbs() != p1.Limbs() {
		panic(fmt.Errorf("receiver dimensions (N=%d, Limbs=%d) do not match input dimensions (N=%d, Limbs=%d)", p.N(), p.Limbs(), p1.N(), p1.Limbs()))
	}

	for i := range p.Coeffs {
		if !utils.Alias1D(p.At(i), p1.At(i)) {
			copy(p.At(i), p1.At(i))
		}
	}

	copy(p.Moduli, p1.Moduli)
	p.Form = p1.Form
}

// AddLimbs appends one zero limb per given modulus, extending the RNS
// basis. The representation form is preserved.
func (p *RNSPoly) AddLimbs(moduli ...uint64) error {

	N := p.N()
	if N == 0 {
		return fmt.Errorf("cannot AddLimbs: receiver has no limbs")
	}

	for _, qi := range moduli {
		if qi < 2 {
			return fmt.Errorf("cannot AddLimbs: modulus %d is smaller than 2", qi)
		}
	}

	for _, qi := range moduli {
		p.Coeffs = append(p.Coeffs, NewPoly(N))
		p.Moduli = append(p.Moduli, qi)
	}

	return nil
}

// DropLimbs removes the k last limbs, shrinking the RNS basis. The
// representation form is preserved.
func (p *RNSPoly) DropLimbs(k int) error {

	if k < 0 || k > p.Limbs() {
		return fmt.Errorf("cannot DropLimbs: k=%d out of range [0, %d]", k, p.Limbs())
	}

	p.Coeffs = p.Coeffs[:len(p.Coeffs)-k]
	p.Moduli = p.Moduli[:len(p.Moduli)-k]

	return nil
}

// InfNorm returns the centered infinity norm max(|c mod q|) of a
// single-limb polynomial, with coefficients lifted to (-q/2, q/2].
// The receiver must hold exactly one strictly reduced limb in
// Coefficient form.
func (p RNSPoly) InfNorm() (uint64, error) {

	if p.Limbs() != 1 {
		return 0, fmt.Errorf("cannot InfNorm: receiver has %d limbs, expected 1", p.Limbs())
	}

	if p.Form != Coefficient {
		return 0, fmt.Errorf("cannot InfNorm: receiver is in %s form, expected %s", p.Form, Coefficient)
	}

	q := p.Moduli[0]
	half := q >> 1

	var norm uint64
	for _, c := range p.At(0) {

		if c >= q {
			return 0, fmt.Errorf("cannot InfNorm: coefficient %d is not strictly reduced mod %d", c, q)
		}

		if c > half {
			c = q - c
		}

		if c > norm {
			norm = c
		}
	}

	return norm, nil
}
