package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/staffcast/staffcast/internal/staffing"
)

func testQuery() staffing.Query {
	return staffing.Query{
		ArrivalRate:        100,
		ServiceTime:        300.0 / 3600.0,
		AgentCount:         15,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20.0 / 3600.0,
	}
}

func TestResultCachePutGet(t *testing.T) {
	c := NewResultCache(10, time.Minute)
	fp := testQuery().Fingerprint()

	if _, ok := c.Get(fp); ok {
		t.Fatal("expected miss on empty cache")
	}

	want := staffing.Result{TrafficIntensity: 8.33, ServiceLevel: 0.95, RequiredAgents: 12}
	c.Put(fp, want)

	got, ok := c.Get(fp)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestResultCacheTTLExpiry(t *testing.T) {
	c := NewResultCache(10, 5*time.Millisecond)
	fp := testQuery().Fingerprint()
	c.Put(fp, staffing.Result{RequiredAgents: 12})

	if _, ok := c.Get(fp); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get(fp); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestResultCacheCapacityEviction(t *testing.T) {
	c := NewResultCache(2, time.Minute)

	c.Put("fp-1", staffing.Result{RequiredAgents: 1})
	c.Put("fp-2", staffing.Result{RequiredAgents: 2})
	c.Put("fp-3", staffing.Result{RequiredAgents: 3})

	if c.Len() != 2 {
		t.Errorf("expected 2 entries after eviction, got %d", c.Len())
	}

	// The newest entry must survive.
	if _, ok := c.Get("fp-3"); !ok {
		t.Error("expected fp-3 to be present")
	}
}

func TestResultCacheOverwrite(t *testing.T) {
	c := NewResultCache(1, time.Minute)

	c.Put("fp", staffing.Result{RequiredAgents: 1})
	c.Put("fp", staffing.Result{RequiredAgents: 2})

	got, ok := c.Get("fp")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.RequiredAgents != 2 {
		t.Errorf("expected overwritten value 2, got %d", got.RequiredAgents)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

// countingEvaluator counts Evaluate calls so tests can verify that the
// decorator short-circuits on a hit.
type countingEvaluator struct {
	calls int
	inner staffing.Evaluator
	err   error
}

func (c *countingEvaluator) Evaluate(q staffing.Query) (staffing.Result, error) {
	c.calls++
	if c.err != nil {
		return staffing.Result{}, c.err
	}
	return c.inner.Evaluate(q)
}

func TestCachedEvaluatorShortCircuits(t *testing.T) {
	counter := &countingEvaluator{inner: staffing.NewEngine(20.0 / 3600.0)}
	cached := NewCachedEvaluator(counter, NewResultCache(10, time.Minute))

	q := testQuery()
	first, err := cached.Evaluate(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.Evaluate(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter.calls != 1 {
		t.Errorf("expected 1 compute call, got %d", counter.calls)
	}
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCachedEvaluatorDistinctQueries(t *testing.T) {
	counter := &countingEvaluator{inner: staffing.NewEngine(20.0 / 3600.0)}
	cached := NewCachedEvaluator(counter, NewResultCache(10, time.Minute))

	q := testQuery()
	if _, err := cached.Evaluate(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.AgentCount = 20
	if _, err := cached.Evaluate(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter.calls != 2 {
		t.Errorf("expected 2 compute calls for distinct queries, got %d", counter.calls)
	}
}

func TestCachedEvaluatorDoesNotCacheErrors(t *testing.T) {
	wantErr := errors.New("boom")
	counter := &countingEvaluator{err: wantErr}
	cached := NewCachedEvaluator(counter, NewResultCache(10, time.Minute))

	q := testQuery()
	for i := 0; i < 2; i++ {
		if _, err := cached.Evaluate(q); !errors.Is(err, wantErr) {
			t.Fatalf("expected error %v, got %v", wantErr, err)
		}
	}
	if counter.calls != 2 {
		t.Errorf("expected errors to bypass the cache, got %d calls", counter.calls)
	}
}
