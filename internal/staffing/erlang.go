package staffing

import "math"

// offeredLoad returns the traffic intensity in erlangs.
func offeredLoad(arrivalRate, serviceTime float64) float64 {
	return arrivalRate * serviceTime
}

// waitProbability returns the Erlang-C probability that an arriving
// contact has to wait, for offered load a and c agents.
//
// Uses the classic summation form with iteratively built factorial
// terms. The result is clamped into [0, 1] to absorb floating-point
// drift; any numeric degeneracy (term overflow for very large agent
// counts) collapses to 1.0, the conservative worst case, rather than
// letting NaN or Inf leak into downstream metrics.
func waitProbability(a float64, c int) float64 {
	if c <= 0 || a >= float64(c) {
		return 1.0
	}

	term := 1.0 // a^k / k!, starting at k = 0
	sum := 1.0
	for k := 1; k < c; k++ {
		term *= a / float64(k)
		sum += term
	}
	top := term * a / float64(c) // a^c / c!

	rho := a / float64(c)
	denom := (1-rho)*sum + top
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return 1.0
	}

	p := top / denom
	if math.IsNaN(p) {
		return 1.0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// averageWait returns the expected queueing delay for wait probability
// p, offered load a and c agents. Zero when nobody waits.
func averageWait(p, a float64, c int, serviceTime float64) float64 {
	if p <= 0 {
		return 0
	}
	return p * serviceTime / (float64(c) - a)
}

// serviceLevel returns the probability that a contact is answered
// within answerTime. When nobody waits every contact is answered
// immediately and the level is 1.
func serviceLevel(p, a float64, c int, serviceTime, answerTime float64) float64 {
	if p <= 0 {
		return 1.0
	}
	sl := 1 - p*math.Exp(-(float64(c)-a)*answerTime/serviceTime)
	if sl < 0 {
		return 0
	}
	if sl > 1 {
		return 1
	}
	return sl
}
