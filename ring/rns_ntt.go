package ring

import (
	"fmt"

	"github.com/aakennes/hehub/utils/concurrency"
)

// NTTInPlace evaluates p = NTT(p) limb-wise, flipping the [Form] tag
// to Evaluation. An error is returned if p is not in Coefficient form
// or if its dimensions do not support the NTT.
func NTTInPlace(p *RNSPoly) error {
	return nttInPlace(p, false)
}

// NTTLazyInPlace evaluates p = NTT(p) limb-wise with outputs in
// [0, 2*modulus-1], flipping the [Form] tag to Evaluation.
func NTTLazyInPlace(p *RNSPoly) error {
	return nttInPlace(p, true)
}

func nttInPlace(p *RNSPoly, lazy bool) error {

	if p.Form != Coefficient {
		return fmt.Errorf("cannot NTT: polynomial is in %s form, expected %s", p.Form, Coefficient)
	}

	for i, qi := range p.Moduli {

		s, err := RingFor(p.N(), qi)
		if err != nil {
			return fmt.Errorf("cannot NTT limb %d: %w", i, err)
		}

		if lazy {
			s.NTTLazy(p.At(i), p.At(i))
		} else {
			s.NTT(p.At(i), p.At(i))
		}
	}

	p.Form = Evaluation

	return nil
}

// INTTInPlace evaluates p = INTT(p) limb-wise, flipping the [Form] tag
// to Coefficient. An error is returned if p is not in Evaluation form
// or if its dimensions do not support the NTT.
func INTTInPlace(p *RNSPoly) error {
	return inttInPlace(p, false)
}

// INTTLazyInPlace evaluates p = INTT(p) limb-wise with outputs in
// [0, 2*modulus-1], flipping the [Form] tag to Coefficient.
func INTTLazyInPlace(p *RNSPoly) error {
	return inttInPlace(p, true)
}

func inttInPlace(p *RNSPoly, lazy bool) error {

	if p.Form != Evaluation {
		return fmt.Errorf("cannot INTT: polynomial is in %s form, expected %s", p.Form, Evaluation)
	}

	for i, qi := range p.Moduli {

		s, err := RingFor(p.N(), qi)
		if err != nil {
			return fmt.Errorf("cannot INTT limb %d: %w", i, err)
		}

		if lazy {
			s.INTTLazy(p.At(i), p.At(i))
		} else {
			s.INTT(p.At(i), p.At(i))
		}
	}

	p.Form = Coefficient

	return nil
}

// NTTInPlaceConcurrent evaluates p = NTT(p) with the limbs processed
// concurrently by at most workers goroutines, flipping the [Form] tag
// to Evaluation. Limbs are independent so the result is identical to
// [NTTInPlace].
func NTTInPlaceConcurrent(p *RNSPoly, workers int) error {

	if p.Form != Coefficient {
		return fmt.Errorf("cannot NTT: polynomial is in %s form, expected %s", p.Form, Coefficient)
	}

	if err := transformLimbsConcurrent(p, workers, func(s *Ring, limb Poly) {
		s.NTT(limb, limb)
	}); err != nil {
		return err
	}

	p.Form = Evaluation

	return nil
}

// INTTInPlaceConcurrent evaluates p = INTT(p) with the limbs processed
// concurrently by at most workers goroutines, flipping the [Form] tag
// to Coefficient.
func INTTInPlaceConcurrent(p *RNSPoly, workers int) error {

	if p.Form != Evaluation {
		return fmt.Errorf("cannot INTT: polynomial is in %s form, expected %s", p.Form, Evaluation)
	}

	if err := transformLimbsConcurrent(p, workers, func(s *Ring, limb Poly) {
		s.INTT(limb, limb)
	}); err != nil {
		return err
	}

	p.Form = Coefficient

	return nil
}

func transformLimbsConcurrent(p *RNSPoly, workers int, f func(s *Ring, limb Poly)) error {

	if workers < 1 {
		return fmt.Errorf("invalid workers: %d < 1", workers)
	}

	// Derives all the contexts up front so that the workers
	// only touch the shared cache read-only.
	rings := make([]*Ring, p.Limbs())
	for i, qi := range p.Moduli {
		s, err := RingFor(p.N(), qi)
		if err != nil {
			return fmt.Errorf("cannot transform limb %d: %w", i, err)
		}
		rings[i] = s
	}

	tokens := make([]struct{}, min(workers, p.Limbs()))

	m := concurrency.NewResourceManager(tokens)

	for i := range rings {
		s, limb := rings[i], p.At(i)
		m.Run(func(struct{}) error {
			f(s, limb)
			return nil
		})
	}

	return m.Wait()
}
