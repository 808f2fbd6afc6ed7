package ring

// Add evaluates p3 = p1 + p2 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) Add(p1, p2, p3 []uint64) {
	AddVec(p1, p2, p3, r.Modulus)
}

// AddLazy evaluates p3 = p1 + p2.
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) AddLazy(p1, p2, p3 []uint64) {
	AddLazyVec(p1, p2, p3)
}

// Sub evaluates p3 = p1 - p2 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) Sub(p1, p2, p3 []uint64) {
	SubVec(p1, p2, p3, r.Modulus)
}

// SubLazy evaluates p3 = p1 + 2*modulus - p2.
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) SubLazy(p1, p2, p3 []uint64) {
	SubLazyVec(p1, p2, p3, r.Modulus)
}

// Neg evaluates p2 = -p1 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) Neg(p1, p2 []uint64) {
	NegVec(p1, p2, r.Modulus)
}

// Reduce evaluates p2 = p1 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) Reduce(p1, p2 []uint64) {
	BarrettReduceVec(p1, p2, r.Modulus, r.BRedConstant)
}

// MulCoeffsBarrett evaluates p3 = p1*p2 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) MulCoeffsBarrett(p1, p2, p3 []uint64) {
	MulCoeffsBarrettVec(p1, p2, p3, r.Modulus, r.BRedConstant)
}

// MulCoeffsMontgomery evaluates p3 = p1*p2 (mod modulus),
// with p2 in Montgomery form.
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) MulCoeffsMontgomery(p1, p2, p3 []uint64) {
	MulCoeffsMontgomeryVec(p1, p2, p3, r.Modulus, r.MRedConstant)
}

// MulScalar evaluates p2 = p1*scalar (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) MulScalar(p1 []uint64, scalar uint64, p2 []uint64) {
	MulScalarMontgomeryReduceVec(p1, MForm(scalar, r.Modulus, r.BRedConstant), p2, r.Modulus, r.MRedConstant)
}

// MulScalarMontgomery evaluates p2 = p1*scalarMont (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) MulScalarMontgomery(p1 []uint64, scalarMont uint64, p2 []uint64) {
	MulScalarMontgomeryReduceVec(p1, scalarMont, p2, r.Modulus, r.MRedConstant)
}

// MForm evaluates p2 = p1 * 2^64 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) MForm(p1, p2 []uint64) {
	MFormVec(p1, p2, r.Modulus, r.BRedConstant)
}

// IMForm evaluates p2 = p1 * (2^64)^-1 (mod modulus).
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) IMForm(p1, p2 []uint64) {
	IMFormVec(p1, p2, r.Modulus, r.MRedConstant)
}

// CenterMod evaluates p2 = center(p1), with the coefficients
// lifted to the signed representatives in (-modulus/2, modulus/2].
// Iteration is done with respect to len(p1).
// All input must have a size which is a multiple of 8.
func (r Ring) CenterMod(p1 []uint64, p2 []int64) {
	CenterModVec(p1, r.Modulus, p2)
}
