package staffing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitProbabilityKnownValue(t *testing.T) {
	// 8.33 erlangs offered to 10 agents: textbook Erlang-C gives a wait
	// probability of roughly 0.49.
	p := waitProbability(8.3333, 10)
	assert.InDelta(t, 0.488, p, 0.01)
}

func TestWaitProbabilityBounds(t *testing.T) {
	cases := []struct {
		a float64
		c int
	}{
		{0.001, 1},
		{0.001, 1000},
		{8.3333, 9},
		{8.3333, 500},
		{250, 260},
		{800, 850}, // factorial terms overflow float64 here
	}
	for _, tc := range cases {
		p := waitProbability(tc.a, tc.c)
		assert.GreaterOrEqual(t, p, 0.0, "a=%v c=%d", tc.a, tc.c)
		assert.LessOrEqual(t, p, 1.0, "a=%v c=%d", tc.a, tc.c)
	}
}

func TestWaitProbabilityOverloaded(t *testing.T) {
	// At or above the offered load everyone waits.
	assert.Equal(t, 1.0, waitProbability(8.0, 8))
	assert.Equal(t, 1.0, waitProbability(8.0, 4))
	assert.Equal(t, 1.0, waitProbability(8.0, 0))
}

func TestWaitProbabilityDecreasesWithAgents(t *testing.T) {
	prev := waitProbability(8.3333, 9)
	for c := 10; c <= 60; c++ {
		p := waitProbability(8.3333, c)
		assert.LessOrEqual(t, p, prev, "c=%d", c)
		prev = p
	}
}

func TestAverageWait(t *testing.T) {
	// No delayed contacts means no queueing delay.
	assert.Equal(t, 0.0, averageWait(0, 8.3333, 15, 0.0833))

	w := averageWait(0.5, 8.0, 10, 0.0833)
	assert.InDelta(t, 0.5*0.0833/2.0, w, 1e-12)
}

func TestServiceLevelShortCircuit(t *testing.T) {
	// Zero wait probability short-circuits to a perfect service level.
	assert.Equal(t, 1.0, serviceLevel(0, 8.3333, 15, 0.0833, 0.00556))
}

func TestServiceLevelZeroAnswerTime(t *testing.T) {
	// With a zero threshold only never-queued contacts count.
	p := waitProbability(8.3333, 10)
	sl := serviceLevel(p, 8.3333, 10, 0.0833, 0)
	assert.InDelta(t, 1-p, sl, 1e-12)
}
