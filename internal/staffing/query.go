package staffing

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Query holds the inputs for a single staffing evaluation.
//
// The engine is unit-agnostic: ServiceTime and TargetAnswerTime must be
// expressed in the same time unit, and ArrivalRate is a contact count per
// that unit. The HTTP and CLI layers convert from call-center units
// (calls per hour, seconds) before building a Query.
type Query struct {
	ArrivalRate        float64 // contacts per time unit (lambda)
	ServiceTime        float64 // mean handle time (1/mu)
	AgentCount         int     // agents being evaluated; 0 when only solving for required agents
	TargetServiceLevel float64 // fraction of contacts answered within TargetAnswerTime, (0, 1]
	TargetAnswerTime   float64 // answer threshold, same unit as ServiceTime
}

// ValidationError reports the Query field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the Query invariants. It returns a *ValidationError
// naming the first offending field, or nil when the query is usable.
func (q Query) Validate() error {
	switch {
	case math.IsNaN(q.ArrivalRate) || math.IsInf(q.ArrivalRate, 0) || q.ArrivalRate <= 0:
		return &ValidationError{Field: "arrivalRate", Reason: "must be a positive finite number"}
	case math.IsNaN(q.ServiceTime) || math.IsInf(q.ServiceTime, 0) || q.ServiceTime <= 0:
		return &ValidationError{Field: "serviceTime", Reason: "must be a positive finite number"}
	case q.AgentCount < 0:
		return &ValidationError{Field: "agentCount", Reason: "must not be negative"}
	case math.IsNaN(q.TargetServiceLevel) || q.TargetServiceLevel <= 0 || q.TargetServiceLevel > 1:
		return &ValidationError{Field: "targetServiceLevel", Reason: "must be in (0, 1]"}
	case math.IsNaN(q.TargetAnswerTime) || math.IsInf(q.TargetAnswerTime, 0) || q.TargetAnswerTime < 0:
		return &ValidationError{Field: "targetAnswerTime", Reason: "must not be negative"}
	}
	return nil
}

// Fingerprint returns a deterministic cache key for the query. The float
// fields are quantized to six decimal places, so only exact (quantized)
// matches share a key; near-identical inputs intentionally do not.
func (q Query) Fingerprint() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.6f|%.6f|%d|%.6f|%.6f",
		q.ArrivalRate, q.ServiceTime, q.AgentCount, q.TargetServiceLevel, q.TargetAnswerTime)
	return fmt.Sprintf("%016x", h.Sum64())
}
