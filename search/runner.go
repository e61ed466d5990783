// Package search runs searcher work across a pool of goroutines.
//
// Work is split into slices (one value of the outermost loop, e.g. the HP IV). Each
// worker computes a whole slice into a private buffer and merges it into the shared
// result list once. Cancellation is eventual: the flag is polled before each slice, so
// slices already running complete and their results are kept.
package search

import (
	"context"
	"io"
	"log"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the runner parameters.
type Config struct {
	// Workers is the number of slices computed concurrently.
	Workers int
	// Logger receives run start, cancellation and completion messages.
	Logger *log.Logger
}

// DefaultConfig uses one worker per CPU and discards log output.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Logger:  log.New(io.Discard, "search: ", log.LstdFlags),
	}
}

// Work computes slice i, appends its results to dst and returns the extended slice.
type Work[T any] func(i int, dst []T) []T

// Runner executes one search at a time. Progress, DrainResults and Cancel may be called
// from other goroutines while Run is in progress.
type Runner[T any] struct {
	config    Config
	semaphore chan struct{}

	searching atomic.Bool
	progress  atomic.Uint64
	total     atomic.Uint64

	mu         sync.Mutex
	results    []T
	sliceTimes []float64
	started    stamp
	elapsed    time.Duration
}

// NewRunner creates a runner. A zero Workers value is replaced by the CPU count and a
// nil Logger by a discarding one.
func NewRunner[T any](config Config) *Runner[T] {
	def := DefaultConfig()
	if config.Workers <= 0 {
		config.Workers = def.Workers
	}
	if config.Logger == nil {
		config.Logger = def.Logger
	}
	return &Runner[T]{
		config:    config,
		semaphore: make(chan struct{}, config.Workers),
	}
}

// Run computes slices 0..n-1. It returns ctx.Err() when the context ended the run and
// nil otherwise, including after Cancel. Results stay available through DrainResults.
func (r *Runner[T]) Run(ctx context.Context, n int, work Work[T]) error {
	r.searching.Store(true)
	r.progress.Store(0)
	r.total.Store(uint64(n))
	r.mu.Lock()
	r.sliceTimes = r.sliceTimes[:0]
	r.started = now()
	r.mu.Unlock()
	r.config.Logger.Printf("starting %d slices on %d workers", n, r.config.Workers)

	var wg sync.WaitGroup
	for i := range n {
		if !r.running(ctx) {
			break
		}
		wg.Add(1)
		r.semaphore <- struct{}{} // acquire
		go func(i int) {
			defer wg.Done()
			defer func() { <-r.semaphore }() // release

			if !r.running(ctx) {
				return
			}
			t0 := now()
			local := work(i, nil)
			ns := float64(since(t0))

			r.mu.Lock()
			r.results = append(r.results, local...)
			r.sliceTimes = append(r.sliceTimes, ns)
			r.mu.Unlock()
			r.progress.Add(1)
		}(i)
	}
	wg.Wait()

	r.mu.Lock()
	r.elapsed = since(r.started)
	r.mu.Unlock()
	cancelled := !r.searching.Swap(false)
	err := ctx.Err()
	switch {
	case err != nil:
		r.config.Logger.Printf("stopped by context after %d/%d slices: %v", r.Progress(), n, err)
	case cancelled:
		r.config.Logger.Printf("cancelled after %d/%d slices", r.Progress(), n)
	default:
		r.config.Logger.Printf("finished %d slices in %v", n, r.Elapsed())
	}
	return err
}

func (r *Runner[T]) running(ctx context.Context) bool {
	return r.searching.Load() && ctx.Err() == nil
}

// RunIVs runs fn for every IV spread inside [min, max], one slice per HP value.
func (r *Runner[T]) RunIVs(ctx context.Context, min, max [6]uint8, fn func(ivs [6]uint8, dst []T) []T) error {
	if min[0] > max[0] {
		return nil
	}
	n := int(max[0]-min[0]) + 1
	return r.Run(ctx, n, func(i int, dst []T) []T {
		ivs := [6]uint8{min[0] + uint8(i)}
		return walkIVs(&ivs, 1, min, max, fn, dst)
	})
}

func walkIVs[T any](ivs *[6]uint8, depth int, min, max [6]uint8, fn func([6]uint8, []T) []T, dst []T) []T {
	if depth == 6 {
		return fn(*ivs, dst)
	}
	for v := int(min[depth]); v <= int(max[depth]); v++ {
		ivs[depth] = uint8(v)
		dst = walkIVs(ivs, depth+1, min, max, fn, dst)
	}
	return dst
}

// Cancel asks the running search to stop. Slices already started still complete.
func (r *Runner[T]) Cancel() {
	r.searching.Store(false)
}

// Searching reports whether a run is in progress and not cancelled.
func (r *Runner[T]) Searching() bool { return r.searching.Load() }

// Progress is the number of completed slices of the current or last run.
func (r *Runner[T]) Progress() uint64 { return r.progress.Load() }

// Total is the number of slices of the current or last run.
func (r *Runner[T]) Total() uint64 { return r.total.Load() }

// DrainResults returns the results merged so far and empties the accumulator.
func (r *Runner[T]) DrainResults() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.results
	r.results = nil
	return out
}

// Elapsed is the wall time of the last finished run, or of the running one so far.
func (r *Runner[T]) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.searching.Load() {
		return since(r.started)
	}
	return r.elapsed
}

// Estimate extrapolates the remaining time from the median slice duration.
func (r *Runner[T]) Estimate() time.Duration {
	med := float64(r.SliceSummary().Median)
	remaining := float64(r.Total() - r.Progress())
	return time.Duration(med * remaining / float64(r.config.Workers))
}

// SliceSummary describes the slice durations of the last run, or the running one so far.
func (r *Runner[T]) SliceSummary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summarize(r.sliceTimes)
}

// SliceTimes returns a copy of the slice durations of the last run in nanoseconds, in
// completion order.
func (r *Runner[T]) SliceTimes() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.sliceTimes)
}
