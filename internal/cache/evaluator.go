package cache

import (
	"github.com/staffcast/staffcast/internal/metrics"
	"github.com/staffcast/staffcast/internal/staffing"
)

// CachedEvaluator decorates a staffing.Evaluator with fingerprint-keyed
// memoization. Validation errors are never cached.
type CachedEvaluator struct {
	inner staffing.Evaluator
	cache *ResultCache
}

// NewCachedEvaluator wraps inner with the given cache.
func NewCachedEvaluator(inner staffing.Evaluator, cache *ResultCache) *CachedEvaluator {
	return &CachedEvaluator{inner: inner, cache: cache}
}

// Evaluate returns the cached result for q when present, computing and
// storing it otherwise.
func (c *CachedEvaluator) Evaluate(q staffing.Query) (staffing.Result, error) {
	fp := q.Fingerprint()
	if res, ok := c.cache.Get(fp); ok {
		metrics.CacheHitsTotal.Inc()
		return res, nil
	}
	metrics.CacheMissesTotal.Inc()

	res, err := c.inner.Evaluate(q)
	if err != nil {
		return staffing.Result{}, err
	}
	c.cache.Put(fp, res)
	return res, nil
}
