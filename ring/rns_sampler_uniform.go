package ring

import (
	"math/bits"

	"github.com/aakennes/hehub/utils/sampling"
)

// UniformSampler wraps a [sampling.Source] and represents
// the state of a sampler of uniform polynomials.
type UniformSampler struct {
	Moduli []uint64
	*sampling.Source
}

// NewUniformSampler creates a new instance of UniformSampler from a
// [sampling.Source] and a list of moduli.
func NewUniformSampler(source *sampling.Source, moduli []uint64) (u *UniformSampler) {
	u = new(UniformSampler)
	u.Moduli = moduli
	u.Source = source
	return
}

// GetSource returns the underlying [sampling.Source] used by the sampler.
func (u UniformSampler) GetSource() *sampling.Source {
	return u.Source
}

// WithSource returns an instance of the underlying sampler with
// a new [sampling.Source].
// It can be used concurrently with the original sampler.
func (u UniformSampler) WithSource(source *sampling.Source) *UniformSampler {
	return &UniformSampler{
		Moduli: u.Moduli,
		Source: source,
	}
}

// AtLevel returns an instance of the target UniformSampler to sample at the given level.
// The returned sampler cannot be used concurrently to the original sampler.
func (u UniformSampler) AtLevel(level int) *UniformSampler {
	return &UniformSampler{
		Moduli: u.Moduli[:level+1],
		Source: u.Source,
	}
}

// Read populates pol with coefficients following a uniform
// distribution over [0, qi-1] for each limb.
func (u *UniformSampler) Read(pol RNSPoly) {
	u.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadAndAdd adds coefficients following a uniform distribution
// over [0, qi-1] on each limb of pol.
func (u *UniformSampler) ReadAndAdd(pol RNSPoly) {
	u.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

func (u *UniformSampler) read(pol RNSPoly, f func(a, b, c uint64) uint64) {

	var c, mask uint64

	r := u.Source

	for j, qi := range u.Moduli {

		mask = (1 << uint64(bits.Len64(qi-1))) - 1

		coeffs := pol.At(j)

		for i := range coeffs {

			c = r.Uint64() & mask

			for c >= qi {
				c = r.Uint64() & mask
			}

			coeffs[i] = f(coeffs[i], c, qi)
		}
	}
}

// ReadNew generates a new polynomial with coefficients following a uniform
// distribution over [0, qi-1], over the full basis of the sampler.
func (u *UniformSampler) ReadNew(N int) (pol RNSPoly, err error) {

	if pol, err = NewRNSPoly(PolyDimensions{N: N, Limbs: len(u.Moduli), Moduli: u.Moduli}); err != nil {
		return RNSPoly{}, err
	}

	u.Read(pol)

	return
}

// Randomize fills all the limbs of p with fresh uniform coefficients
// drawn from source. The representation form is preserved.
func (p RNSPoly) Randomize(source *sampling.Source) {
	NewUniformSampler(source, p.Moduli).Read(p)
}
