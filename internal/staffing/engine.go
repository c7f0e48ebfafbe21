// Package staffing implements an Erlang-C (M/M/c) workforce staffing
// calculator: given call-arrival parameters and a service-level target
// it computes wait probability, expected delay, the resulting service
// level and the minimum agent count that meets the target.
package staffing

import (
	"fmt"
	"math"
)

const (
	// stabilizingHeadroom is the margin applied to the offered load when
	// estimating how many agents would stabilize an overloaded queue.
	stabilizingHeadroom = 1.15

	// DefaultMaxSearchAgents bounds the required-agents search.
	DefaultMaxSearchAgents = 10000
)

// Result is the outcome of a staffing evaluation. All fields are
// finite except AverageWaitTime, which is +Inf when the evaluated
// agent count cannot stabilize the queue.
type Result struct {
	TrafficIntensity float64 // offered load in erlangs
	WaitProbability  float64 // Erlang-C probability of delay, in [0, 1]
	AverageWaitTime  float64 // expected queueing delay, same unit as ServiceTime
	ServiceLevel     float64 // fraction answered within TargetAnswerTime, in [0, 1]
	RequiredAgents   int     // minimum agents meeting the target, >= ceil(load)+1
	MeetsTarget      bool
	Recommendation   string
}

// Unstable reports whether the evaluated agent count was at or below
// the offered load, leaving the queue without a steady state.
func (r Result) Unstable() bool {
	return math.IsInf(r.AverageWaitTime, 1)
}

// Evaluator is the subset of the engine needed by callers that only
// evaluate queries. It lets decorators (such as a result cache) stand
// in for the engine.
type Evaluator interface {
	Evaluate(q Query) (Result, error)
}

// Engine computes staffing metrics. It is pure and stateless, performs
// no I/O and is safe for concurrent use from any number of goroutines.
type Engine struct {
	defaultAnswerTime float64
	maxSearchAgents   int
}

// NewEngine creates an Engine. defaultAnswerTime is the answer-time
// threshold used by RequiredAgentsFor and must be in the same time unit
// as the service times later passed in.
func NewEngine(defaultAnswerTime float64) *Engine {
	return &Engine{
		defaultAnswerTime: defaultAnswerTime,
		maxSearchAgents:   DefaultMaxSearchAgents,
	}
}

// NewEngineWithBound is NewEngine with an explicit cap on the
// required-agents search.
func NewEngineWithBound(defaultAnswerTime float64, maxSearchAgents int) *Engine {
	e := NewEngine(defaultAnswerTime)
	if maxSearchAgents > 0 {
		e.maxSearchAgents = maxSearchAgents
	}
	return e
}

// Evaluate computes the staffing metrics for q. The only error returned
// is a *ValidationError; an overloaded queue is an expected business
// outcome and is reported through the Result fields instead.
func (e *Engine) Evaluate(q Query) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	a := offeredLoad(q.ArrivalRate, q.ServiceTime)

	// Offered load at or above capacity: the queue has no steady state.
	if float64(q.AgentCount) <= a {
		required := stabilizingAgents(a)
		return Result{
			TrafficIntensity: a,
			WaitProbability:  1.0,
			AverageWaitTime:  math.Inf(1),
			ServiceLevel:     0,
			RequiredAgents:   required,
			MeetsTarget:      false,
			Recommendation: fmt.Sprintf(
				"offered load of %.2f erlangs is at or above the %d available agents; at least %d agents are needed to stabilize the queue",
				a, q.AgentCount, required),
		}, nil
	}

	p := waitProbability(a, q.AgentCount)
	wait := averageWait(p, a, q.AgentCount, q.ServiceTime)
	sl := serviceLevel(p, a, q.AgentCount, q.ServiceTime, q.TargetAnswerTime)
	required := e.searchRequiredAgents(a, q.ServiceTime, q.TargetServiceLevel, q.TargetAnswerTime)
	meets := sl >= q.TargetServiceLevel

	return Result{
		TrafficIntensity: a,
		WaitProbability:  p,
		AverageWaitTime:  wait,
		ServiceLevel:     sl,
		RequiredAgents:   required,
		MeetsTarget:      meets,
		Recommendation:   recommend(q.AgentCount, required, meets, sl, q.TargetServiceLevel),
	}, nil
}

// RequiredAgentsFor returns the minimum agent count meeting
// targetServiceLevel for the given load, using the engine's default
// answer-time threshold. Used when no current agent count is known.
func (e *Engine) RequiredAgentsFor(arrivalRate, serviceTime, targetServiceLevel float64) (int, error) {
	q := Query{
		ArrivalRate:        arrivalRate,
		ServiceTime:        serviceTime,
		TargetServiceLevel: targetServiceLevel,
		TargetAnswerTime:   e.defaultAnswerTime,
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}
	a := offeredLoad(arrivalRate, serviceTime)
	return e.searchRequiredAgents(a, serviceTime, targetServiceLevel, e.defaultAnswerTime), nil
}

// stabilizingAgents estimates the agent count that would stabilize an
// overloaded queue: the offered load plus headroom, and never less than
// the smallest stable count.
func stabilizingAgents(a float64) int {
	n := int(math.Ceil(a * stabilizingHeadroom))
	if floor := int(math.Ceil(a)) + 1; n < floor {
		n = floor
	}
	return n
}

// bandFactor is the multiplicative headroom seed for the
// required-agents search, keyed by service-level band. The factors are
// an operational rule of thumb, not an inverse solve of Erlang-C; the
// local search below corrects the seed in either direction.
func bandFactor(target float64) float64 {
	switch {
	case target <= 0.80:
		return 1.15
	case target <= 0.90:
		return 1.2
	case target < 0.95:
		return 1.3
	default:
		return 1.4
	}
}

// searchRequiredAgents finds the minimum agent count whose service
// level reaches target. Service level is non-decreasing in the agent
// count for a fixed load, so a seeded walk terminates at the exact
// boundary. The result is never below ceil(a)+1 and never above the
// configured search bound.
func (e *Engine) searchRequiredAgents(a, serviceTime, target, answerTime float64) int {
	floor := int(math.Ceil(a)) + 1

	slAt := func(c int) float64 {
		p := waitProbability(a, c)
		return serviceLevel(p, a, c, serviceTime, answerTime)
	}

	cand := int(math.Ceil(a * bandFactor(target)))
	if cand < floor {
		cand = floor
	}
	if cand > e.maxSearchAgents {
		cand = e.maxSearchAgents
	}

	if slAt(cand) >= target {
		for cand > floor && slAt(cand-1) >= target {
			cand--
		}
	} else {
		for cand < e.maxSearchAgents && slAt(cand) < target {
			cand++
		}
	}
	return cand
}

// recommend maps the gap between current and required staffing onto one
// of three message shapes: target met, add agents, or review inputs
// (required <= current yet the target is unmet signals inconsistent
// inputs rather than a staffing gap).
func recommend(current, required int, meets bool, sl, target float64) string {
	switch {
	case meets:
		return fmt.Sprintf("service level target met: %d agents deliver %.1f%% against a %.1f%% target",
			current, sl*100, target*100)
	case required > current:
		return fmt.Sprintf("add %d agents to reach the %.1f%% service level target",
			required-current, target*100)
	default:
		return fmt.Sprintf("review inputs: %d agents should cover the load but the computed service level is %.1f%%",
			current, sl*100)
	}
}
