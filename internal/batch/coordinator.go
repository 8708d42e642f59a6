// Package batch runs ingredient decomposition over a long list in sequential
// chunks, reporting progress and honouring cancellation between chunks.
package batch

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"recipekit/internal/domain"
	"recipekit/internal/logger"
)

// DecomposeFunc decomposes one chunk. It must return one result per line.
type DecomposeFunc func(ctx context.Context, lines []string) ([]domain.RawDecomposition, error)

// ProgressFunc receives a snapshot once before the first chunk and after every chunk.
type ProgressFunc func(domain.BatchProgress)

// Item is a successfully decomposed line.
type Item struct {
	Index         int
	Line          string
	Decomposition domain.RawDecomposition
}

// Failed is a line whose chunk returned an error.
type Failed struct {
	Index        int
	OriginalText string
	Err          error
}

// Result is the merged outcome of all chunks. Items and Failed together cover
// every input index exactly once, each in ascending index order.
type Result struct {
	Items        []Item
	Failed       []Failed
	TotalBatches int
	Duration     time.Duration
}

// Config holds coordinator defaults.
type Config struct {
	MaxBatchSize    int
	DefaultEstimate time.Duration
}

// Coordinator splits work into chunks and runs them strictly in order.
type Coordinator struct {
	cfg     Config
	limiter *rate.Limiter
	log     *logger.Logger
	now     func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLimiter makes every chunk wait on l before calling out.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Coordinator) { c.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator creates a Coordinator. A non-positive MaxBatchSize means 20.
func NewCoordinator(cfg Config, opts ...Option) *Coordinator {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 20
	}
	c := &Coordinator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.OrNop(c.log).With("component", "batch")
	return c
}

// RunOptions are per-call settings. BatchSize overrides the configured maximum when positive.
type RunOptions struct {
	BatchSize  int
	OnProgress ProgressFunc
}

// Run decomposes lines chunk by chunk. A failing chunk records its lines in
// Result.Failed and does not stop later chunks. Cancellation of ctx is checked
// before each chunk; if set, Run returns an error wrapping domain.ErrCancelled
// and no partial result. A chunk already in flight is never interrupted.
func (c *Coordinator) Run(ctx context.Context, lines []string, fn DecomposeFunc, opts RunOptions) (*Result, error) {
	start := c.now()
	maxSize := c.cfg.MaxBatchSize
	if opts.BatchSize > 0 {
		maxSize = opts.BatchSize
	}
	sizes := ChunkSizes(len(lines), maxSize)
	res := &Result{TotalBatches: len(sizes)}

	report := func(done, processed int, elapsed time.Duration) {
		if opts.OnProgress == nil {
			return
		}
		opts.OnProgress(domain.BatchProgress{
			CurrentBatch:             done,
			TotalBatches:             len(sizes),
			ParsedCount:              processed,
			TotalCount:               len(lines),
			EstimatedTimeRemainingMs: c.estimate(done, len(sizes), elapsed).Milliseconds(),
			CanCancel:                done < len(sizes),
		})
	}
	report(0, 0, 0)

	var chunkTime time.Duration
	offset := 0
	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			c.log.Info("batch cancelled", "batch", i+1, "total_batches", len(sizes))
			return nil, errors.Wrapf(domain.ErrCancelled, "before batch %d of %d", i+1, len(sizes))
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil, errors.Wrapf(domain.ErrCancelled, "waiting for batch %d of %d", i+1, len(sizes))
				}
				return nil, errors.Wrap(err, "waiting for rate limiter")
			}
		}

		chunk := lines[offset : offset+size]
		chunkStart := c.now()
		out, err := fn(context.WithoutCancel(ctx), chunk)
		if err == nil && len(out) != len(chunk) {
			err = errors.Wrapf(domain.ErrDecompositionMismatch, "got %d results for %d lines", len(out), len(chunk))
		}
		chunkTime += c.now().Sub(chunkStart)

		if err != nil {
			c.log.Warn("batch failed", "batch", i+1, "total_batches", len(sizes), "lines", len(chunk), "error", err)
			for j, line := range chunk {
				res.Failed = append(res.Failed, Failed{Index: offset + j, OriginalText: line, Err: err})
			}
		} else {
			for j, line := range chunk {
				res.Items = append(res.Items, Item{Index: offset + j, Line: line, Decomposition: out[j]})
			}
		}
		offset += size
		report(i+1, offset, chunkTime)
	}

	res.Duration = c.now().Sub(start)
	c.log.Debug("batch run complete",
		"lines", len(lines), "batches", len(sizes), "failed", len(res.Failed), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

// estimate extrapolates the average chunk duration so far to the remaining
// chunks, using the configured default before any chunk has completed.
func (c *Coordinator) estimate(done, total int, elapsed time.Duration) time.Duration {
	remaining := total - done
	if remaining <= 0 {
		return 0
	}
	perBatch := c.cfg.DefaultEstimate
	if done > 0 {
		perBatch = elapsed / time.Duration(done)
	}
	return perBatch * time.Duration(remaining)
}

// ChunkSizes distributes n items evenly across the fewest chunks of at most
// maxSize items. 25 items with a maximum of 20 yields [13 12].
func ChunkSizes(n, maxSize int) []int {
	if n <= 0 {
		return nil
	}
	if maxSize <= 0 {
		maxSize = n
	}
	k := (n + maxSize - 1) / maxSize
	base, extra := n/k, n%k
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
