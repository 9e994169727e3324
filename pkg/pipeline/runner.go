package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/beadgraph/pkg/cache"
	"github.com/matzehuels/beadgraph/pkg/engine"
	"github.com/matzehuels/beadgraph/pkg/observability"
)

// Runner wraps the engine with a result cache.
//
// A Runner holds no per-request state and is safe for concurrent use.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	TTL     time.Duration
	Workers int

	// Refresh skips cache reads but still writes fresh results.
	Refresh bool

	flight singleflight.Group
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		TTL:     DefaultTTL,
		Workers: DefaultBatchWorkers,
	}
}

type flightResult struct {
	out []byte
	hit bool
}

// Analyze returns the JSON result of op over the raw JSON bead array.
// hit reports whether the result came from the cache.
func (r *Runner) Analyze(ctx context.Context, op engine.Operation, raw []byte) (out []byte, hit bool, err error) {
	if _, err := engine.Parse(string(op)); err != nil {
		return nil, false, err
	}
	key := r.Keyer.AnalysisKey(string(op), cache.Hash(raw))

	v, err, shared := r.flight.Do(key, func() (any, error) {
		if !r.Refresh {
			if data, ok, err := r.Cache.Get(ctx, key); err != nil {
				r.Logger.Warn("cache read failed", "op", op, "err", err)
			} else if ok {
				observability.Cache().OnCacheHit(ctx, string(op))
				return flightResult{out: data, hit: true}, nil
			}
			observability.Cache().OnCacheMiss(ctx, string(op))
		}

		start := time.Now()
		data, err := engine.RunJSON(ctx, op, raw)
		if err != nil {
			return nil, err
		}
		r.Logger.Debug("analysed", "op", op, "bytes", len(raw), "duration", time.Since(start))

		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "op", op, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, string(op), len(data))
		}
		return flightResult{out: data}, nil
	})
	if err != nil {
		return nil, false, err
	}
	if shared {
		r.Logger.Debug("shared in-flight result", "op", op)
	}
	res := v.(flightResult)
	return res.out, res.hit, nil
}

// BatchResult is the outcome of one input of [Runner.Batch].
type BatchResult struct {
	Output []byte
	Hit    bool
	Err    error
}

// Batch runs op over every input concurrently, at most r.Workers at a
// time. Per-input failures are reported in the result rather than
// aborting the batch; the returned error is non-nil only if ctx is
// cancelled.
func (r *Runner) Batch(ctx context.Context, op engine.Operation, inputs [][]byte) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	g.SetLimit(workers)

	for i, raw := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, hit, err := r.Analyze(gctx, op, raw)
			results[i] = BatchResult{Output: out, Hit: hit, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
