// Package query provides the Manager, the high-level entry point for
// executing operation trees against a store. It layers timeouts, result
// limits, a fingerprint-keyed result cache, and metrics over the
// executor.
package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/graph/executor"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/pkg/cache"
)

// Manager orchestrates query execution over a store.
type Manager struct {
	config   Config
	store    *graph.Store
	executor *executor.Executor

	resultCache cache.Cache[*Result]
	metrics     *Metrics
	core        *metric.Metrics

	logger *slog.Logger
}

// Deps holds runtime dependencies for the query manager.
type Deps struct {
	Config   Config
	Store    *graph.Store
	Registry *metric.MetricsRegistry
	Logger   *slog.Logger
}

// NewManager creates a query manager.
func NewManager(deps Deps) (*Manager, error) {
	deps.Config.SetDefaults()

	if err := deps.Config.Validate(); err != nil {
		return nil, err
	}
	if deps.Store == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "QueryManager", "NewManager",
			"store dependency is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		config:   deps.Config,
		store:    deps.Store,
		executor: executor.New(deps.Store, executor.WithLogger(logger)),
		logger:   logger,
	}

	if deps.Registry != nil {
		m.metrics = NewMetrics(deps.Registry, "query_manager")
		m.core = deps.Registry.CoreMetrics()
	}

	if deps.Config.Cache.Enabled {
		resultCache, err := newResultCache(deps.Config.Cache, deps.Registry)
		if err != nil {
			return nil, err
		}
		m.resultCache = resultCache
	}

	return m, nil
}

func newResultCache(cfg CacheConfig, registry *metric.MetricsRegistry) (cache.Cache[*Result], error) {
	var opts []cache.Option[*Result]
	if registry != nil {
		opts = append(opts, cache.WithMetrics[*Result](registry, "query_results"))
	}
	c, err := cache.NewLRU[*Result](cfg.Size, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "QueryManager", "NewManager", "result cache construction")
	}
	return c, nil
}

// Execute evaluates the operation tree and materializes the result,
// narrowed to the result variables. Identical trees are served from the
// result cache until InvalidateCache is called.
func (m *Manager) Execute(ctx context.Context, op *algebra.Operation) (*Result, error) {
	start := time.Now()

	if op == nil {
		return nil, errors.WrapFatal(errors.ErrNilOperation, "QueryManager", "Execute", "operation check")
	}
	if err := op.Validate(); err != nil {
		m.recordQuery(op, start, 0, err)
		return nil, err
	}

	cacheKey := m.cacheKey(op)
	if cacheKey != "" {
		if cached, ok := m.resultCache.Get(cacheKey); ok {
			m.metrics.RecordCacheHit()
			hit := *cached
			hit.Cached = true
			m.recordQuery(op, start, hit.Len(), nil)
			return &hit, nil
		}
		m.metrics.RecordCacheMiss()
	}

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	solutions, truncated, err := m.collect(ctx, op)
	if err != nil {
		m.recordQuery(op, start, 0, err)
		if ctx.Err() != nil {
			return nil, errors.WrapTransient(errors.ErrQueryTimeout, "QueryManager", "Execute",
				"evaluation exceeded the configured timeout")
		}
		return nil, err
	}

	variables := resultVariables(op)
	result := &Result{
		Variables: variables,
		Solutions: projectSolutions(solutions, variables),
		Truncated: truncated,
	}

	if cacheKey != "" {
		if _, err := m.resultCache.Set(cacheKey, result); err != nil {
			m.logger.Warn("result cache store failed", "error", err)
		}
	}

	m.recordQuery(op, start, result.Len(), nil)
	return result, nil
}

// Evaluate returns the lazy solution stream for the operation tree,
// bypassing the result cache and the MaxResults limit. The caller owns
// the iterator and must close it.
func (m *Manager) Evaluate(op *algebra.Operation) (executor.Iterator, error) {
	return m.executor.Evaluate(op)
}

// InvalidateCache drops every cached result. Callers mutating the store
// directly should invalidate before querying again.
func (m *Manager) InvalidateCache() {
	if m.resultCache != nil {
		if err := m.resultCache.Clear(); err != nil {
			m.logger.Warn("result cache clear failed", "error", err)
		}
	}
}

// Close releases the manager's resources.
func (m *Manager) Close() error {
	if m.resultCache != nil {
		return m.resultCache.Close()
	}
	return nil
}

// collect drains the iterator up to MaxResults, checking the context
// between solutions.
func (m *Manager) collect(ctx context.Context, op *algebra.Operation) ([]*algebra.Solution, bool, error) {
	iter, err := m.executor.Evaluate(op)
	if err != nil {
		return nil, false, err
	}
	defer iter.Close()

	var solutions []*algebra.Solution
	truncated := false
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, false, errors.WrapTransient(err, "QueryManager", "collect", "context check")
		}
		if len(solutions) >= m.config.MaxResults {
			truncated = true
			break
		}
		solutions = append(solutions, iter.Solution())
	}
	if err := iter.Err(); err != nil {
		return nil, false, err
	}
	return solutions, truncated, nil
}

// cacheKey fingerprints the operation tree, or returns "" when caching
// is disabled or the tree cannot be fingerprinted.
func (m *Manager) cacheKey(op *algebra.Operation) string {
	if m.resultCache == nil {
		return ""
	}
	key, err := op.Fingerprint()
	if err != nil {
		m.logger.Warn("operation fingerprint failed, bypassing cache", "error", err)
		return ""
	}
	return key
}

func (m *Manager) recordQuery(op *algebra.Operation, start time.Time, solutions int, err error) {
	duration := time.Since(start)
	kind := "invalid"
	if op != nil {
		kind = string(op.Kind)
	}
	m.metrics.RecordQuery(kind, duration, solutions, err == nil)
	if m.core == nil {
		return
	}
	m.core.RecordQuery(kind, duration, solutions, err == nil)
	if err != nil {
		m.core.RecordError("query_manager", errorClass(err))
	}
}

func errorClass(err error) string {
	switch {
	case errors.IsInvalid(err):
		return "invalid"
	case errors.IsFatal(err):
		return "fatal"
	case errors.IsTransient(err):
		return "transient"
	default:
		return "unknown"
	}
}
