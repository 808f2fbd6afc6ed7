package ckks

import (
	"fmt"
	"math/big"

	"github.com/aakennes/hehub/ring"
	"github.com/aakennes/hehub/utils"
	"github.com/aakennes/hehub/utils/bignum"
)

// MinLogN is the smallest supported ring degree exponent.
const MinLogN = 3

// MaxLogN is the largest supported ring degree exponent.
const MaxLogN = 17

// DefaultPrecision is the precision in bits of the encoding when no
// higher precision is requested. It matches the mantissa of a float64.
const DefaultPrecision = uint(53)

// Encoder is a struct that implements the encoding and decoding between
// complex slot vectors and [Plaintext] polynomials over the canonical
// embedding of the 2N-th cyclotomic field. An Encoder is instantiated
// for a ring degree and a precision, and can encode on any RNS basis of
// that degree.
//
// Two encoding domains are provided:
//
//	Float64: the embedding is evaluated over complex128. This domain is
//	         faster and should be preferred when the scale does not
//	         exceed 2^{50} or so.
//
//	BigComplex: the embedding is evaluated over arbitrary precision
//	         complex numbers. This domain is slower but is required for
//	         scales approaching the full modulus.
//
// The domain is selected at construction time by the prec argument:
// prec <= 53 selects Float64, a larger prec selects BigComplex with
// prec bits.
type Encoder struct {
	logN     int
	prec     uint
	m        int
	rotGroup []int
	roots    []complex128
	rootsBig []bignum.Complex
}

// NewEncoder creates a new [Encoder] for ring degree 2^{logN} and the
// given precision in bits. A prec of 0 selects [DefaultPrecision].
func NewEncoder(logN int, prec uint) (ecd *Encoder, err error) {

	if logN < MinLogN || logN > MaxLogN {
		return nil, fmt.Errorf("invalid logN: must be %d <= logN=%d <= %d", MinLogN, logN, MaxLogN)
	}

	if prec == 0 {
		prec = DefaultPrecision
	}

	m := 2 << logN
	slots := 1 << (logN - 1)

	rotGroup := make([]int, slots)
	fivePows := 1
	for i := 0; i < slots; i++ {
		rotGroup[i] = fivePows
		fivePows *= int(ring.GaloisGen)
		fivePows &= m - 1
	}

	ecd = &Encoder{
		logN:     logN,
		prec:     prec,
		m:        m,
		rotGroup: rotGroup,
	}

	if prec <= DefaultPrecision {
		ecd.roots = GetRootsComplex128(m)
	} else {
		ecd.rootsBig = GetRootsBigComplex(m, prec)
	}

	return ecd, nil
}

// LogN returns the base two logarithm of the ring degree.
func (ecd Encoder) LogN() int {
	return ecd.logN
}

// Prec returns the precision in bits of the embedding.
func (ecd Encoder) Prec() uint {
	return ecd.prec
}

// Slots returns the number of complex slots, which is half the ring
// degree.
func (ecd Encoder) Slots() int {
	return 1 << (ecd.logN - 1)
}

// Encode encodes values on a fresh [Plaintext] over the RNS basis
// described by dims, with the given scaling factor. At most N/2 values
// can be encoded; shorter inputs are zero-padded. The returned
// plaintext polynomial is in Coefficient form; callers that need the
// NTT domain, e.g. to apply automorphisms, transform it explicitly.
func (ecd *Encoder) Encode(values []complex128, scale float64, dims ring.PolyDimensions) (pt *Plaintext, err error) {

	slots := ecd.Slots()

	if len(values) > slots {
		return nil, fmt.Errorf("cannot Encode: len(values)=%d exceeds the number of slots %d", len(values), slots)
	}

	if scale <= 0 {
		return nil, fmt.Errorf("cannot Encode: scale=%f must be strictly positive", scale)
	}

	if dims.N != 1<<ecd.logN {
		return nil, fmt.Errorf("cannot Encode: dims.N=%d does not match the encoder ring degree %d", dims.N, 1<<ecd.logN)
	}

	r, err := ring.RNSRingForDimensions(dims)
	if err != nil {
		return nil, fmt.Errorf("cannot Encode: %w", err)
	}

	p := r.NewRNSPoly()

	if ecd.prec <= DefaultPrecision {

		buff := make([]complex128, slots)
		copy(buff, values)

		SpecialIFFT(buff, slots, ecd.m, ecd.rotGroup, ecd.roots)

		Complex128ToFixedPointCRT(r, buff, scale, p)

	} else {

		buff := make([]bignum.Complex, slots)
		for i := range buff {
			buff[i].SetPrec(ecd.prec)
		}

		if err = bignum.ToComplexSlice(values, ecd.prec, buff); err != nil {
			return nil, fmt.Errorf("cannot Encode: %w", err)
		}

		ecd.specialIFFTArbitrary(buff, slots)

		ComplexArbitraryToFixedPointCRT(r, buff, new(big.Float).SetPrec(ecd.prec).SetFloat64(scale), p)
	}

	return &Plaintext{Poly: p, Scale: scale}, nil
}

// Decode decodes the plaintext and returns its slot vector. The
// plaintext polynomial must be in Coefficient form; the receiver is
// not modified.
func (ecd *Encoder) Decode(pt *Plaintext) (values []complex128, err error) {

	if pt.Scale <= 0 {
		return nil, fmt.Errorf("cannot Decode: scale=%f must be strictly positive", pt.Scale)
	}

	if pt.Poly.N() != 1<<ecd.logN {
		return nil, fmt.Errorf("cannot Decode: plaintext ring degree %d does not match the encoder ring degree %d", pt.Poly.N(), 1<<ecd.logN)
	}

	if pt.Poly.Form != ring.Coefficient {
		return nil, fmt.Errorf("cannot Decode: plaintext is in %s form, expected %s", pt.Poly.Form, ring.Coefficient)
	}

	p := pt.Poly

	slots := ecd.Slots()

	if ecd.prec <= DefaultPrecision {

		buff := make([]complex128, slots)

		if p.Limbs() == 1 {
			ecd.coeffsToComplexSingleLimb(p, pt.Scale, buff)
		} else if err = ecd.coeffsToComplexCRT(p, pt.Scale, buff); err != nil {
			return nil, fmt.Errorf("cannot Decode: %w", err)
		}

		SpecialFFT(buff, slots, ecd.m, ecd.rotGroup, ecd.roots)

		return buff, nil
	}

	buff := make([]bignum.Complex, slots)
	for i := range buff {
		buff[i].SetPrec(ecd.prec)
	}

	if err = ecd.coeffsToComplexArbitrary(p, pt.Scale, buff); err != nil {
		return nil, fmt.Errorf("cannot Decode: %w", err)
	}

	ecd.specialFFTArbitrary(buff, slots)

	values = make([]complex128, slots)
	for i := range values {
		values[i] = buff[i].Complex128()
	}

	return values, nil
}

// coeffsToComplexSingleLimb centers the residues of a single-limb
// polynomial around q/2 and divides them by the scale.
func (ecd *Encoder) coeffsToComplexSingleLimb(p ring.RNSPoly, scale float64, values []complex128) {

	slots := len(values)

	q := p.Moduli[0]
	half := q >> 1

	coeffs := p.At(0)

	toFloat := func(c uint64) float64 {
		if c > half {
			return -float64(q - c)
		}
		return float64(c)
	}

	for i := 0; i < slots; i++ {
		values[i] = complex(toFloat(coeffs[i])/scale, toFloat(coeffs[i+slots])/scale)
	}
}

// coeffsToComplexCRT reconstructs the centered coefficients of a
// multi-limb polynomial with the CRT and divides them by the scale.
func (ecd *Encoder) coeffsToComplexCRT(p ring.RNSPoly, scale float64, values []complex128) error {

	r, err := ring.RNSRingForDimensions(p.Dimensions())
	if err != nil {
		return err
	}

	bigCoeffs := make([]big.Int, p.N())
	r.PolyToBigintCentered(p, 1, bigCoeffs)

	slots := len(values)

	scaleFlo := new(big.Float).SetFloat64(scale)
	tmp := new(big.Float)

	for i := 0; i < slots; i++ {

		tmp.SetInt(&bigCoeffs[i])
		tmp.Quo(tmp, scaleFlo)
		re, _ := tmp.Float64()

		tmp.SetInt(&bigCoeffs[i+slots])
		tmp.Quo(tmp, scaleFlo)
		im, _ := tmp.Float64()

		values[i] = complex(re, im)
	}

	return nil
}

// coeffsToComplexArbitrary reconstructs the centered coefficients and
// divides them by the scale, keeping prec bits of precision.
func (ecd *Encoder) coeffsToComplexArbitrary(p ring.RNSPoly, scale float64, values []bignum.Complex) error {

	r, err := ring.RNSRingForDimensions(p.Dimensions())
	if err != nil {
		return err
	}

	bigCoeffs := make([]big.Int, p.N())
	r.PolyToBigintCentered(p, 1, bigCoeffs)

	slots := len(values)

	scaleFlo := bignum.NewFloat(scale, ecd.prec)
	tmp := new(big.Float).SetPrec(ecd.prec)

	for i := 0; i < slots; i++ {
		values[i][0].Quo(tmp.SetInt(&bigCoeffs[i]), scaleFlo)
		values[i][1].Quo(tmp.SetInt(&bigCoeffs[i+slots]), scaleFlo)
	}

	return nil
}

// specialIFFTArbitrary evaluates the special inverse FFT in place over
// arbitrary precision complex numbers.
func (ecd *Encoder) specialIFFTArbitrary(values []bignum.Complex, N int) {

	mul := bignum.NewComplexMultiplier()

	u := new(bignum.Complex).SetPrec(ecd.prec)
	v := new(bignum.Complex).SetPrec(ecd.prec)

	var lenh, lenq, gap, idx int

	for len := N; len >= 2; len >>= 1 {
		lenh = len >> 1
		lenq = len << 2
		gap = ecd.m / lenq
		for i := 0; i < N; i += len {
			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				idx = (lenq - (ecd.rotGroup[j] % lenq)) * gap
				u.Add(&values[k], &values[k+lenh])
				v.Sub(&values[k], &values[k+lenh])
				mul.Mul(v, &ecd.rootsBig[idx], v)
				values[k].Set(u)
				values[k+lenh].Set(v)
			}
		}
	}

	NBig := bignum.NewFloat(float64(N), ecd.prec)
	for i := range values {
		values[i][0].Quo(&values[i][0], NBig)
		values[i][1].Quo(&values[i][1], NBig)
	}

	utils.BitReverseInPlaceSlice(values, N)
}

// specialFFTArbitrary evaluates the special FFT in place over arbitrary
// precision complex numbers.
func (ecd *Encoder) specialFFTArbitrary(values []bignum.Complex, N int) {

	mul := bignum.NewComplexMultiplier()

	u := new(bignum.Complex).SetPrec(ecd.prec)
	v := new(bignum.Complex).SetPrec(ecd.prec)

	utils.BitReverseInPlaceSlice(values, N)

	var lenh, lenq, gap, idx int

	for len := 2; len <= N; len <<= 1 {
		lenh = len >> 1
		lenq = len << 2
		gap = ecd.m / lenq
		for i := 0; i < N; i += len {
			for j, k := 0, i; j < lenh; j, k = j+1, k+1 {
				idx = (ecd.rotGroup[j] % lenq) * gap
				u.Set(&values[k])
				mul.Mul(&values[k+lenh], &ecd.rootsBig[idx], v)
				values[k].Add(u, v)
				values[k+lenh].Sub(u, v)
			}
		}
	}
}
