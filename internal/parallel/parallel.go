// Package parallel runs per-sample loops across worker goroutines.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/multilabel/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
// MLLOSS_NUM_THREADS overrides the worker count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	if t := envconfig.NumThreads(); t > 0 {
		n = t
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Sequential returns a Config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// chunks splits [0, n) into contiguous ranges of at least MinChunkSize items.
// Returns nil when the loop should run sequentially.
func (cfg Config) chunks(n int) [][2]int {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		return nil
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	out := make([][2]int, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		out = append(out, [2]int{start, min(start+chunkSize, n)})
	}
	return out
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	chunks := cfg.chunks(n)
	if chunks == nil {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(c[0], c[1])
	}
	wg.Wait()
}

// ForErr executes f(i) for i in [0, n) and returns the first error reported.
//
// A chunk stops at its first failing index. Other chunks may still finish, so
// f must only write to state owned by index i.
func ForErr(n int, f func(i int) error, cfg Config) error {
	chunks := cfg.chunks(n)
	if chunks == nil {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for _, c := range chunks {
		g.Go(func() error {
			for i := c[0]; i < c[1]; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
