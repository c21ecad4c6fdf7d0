package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/avela/imgcheck/internal/logger"
	"github.com/avela/imgcheck/internal/probe"
)

// Checker performs a single URL liveness check.
type Checker interface {
	Check(url string) probe.Outcome
}

// Progress is called after each completed probe with the task's index and
// outcome plus running completion counts. Callbacks run on worker
// goroutines and must be safe for concurrent use.
type Progress func(index int, url string, outcome probe.Outcome, done, total int)

type task struct {
	index int
	url   string
}

// Dispatcher fans a URL list out across a fixed pool of workers and
// collects one outcome per input, keyed by original position.
type Dispatcher struct {
	checker Checker
	workers int

	// OnResult, when set, receives a notification per completed probe.
	OnResult Progress
}

// New creates a Dispatcher running at most workers probes concurrently.
func New(checker Checker, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{checker: checker, workers: workers}
}

// Run checks every URL and returns a result slice of the same length,
// where slot i holds the outcome for urls[i]. Completion order is
// unspecified; ordering is restored by index. A failing or panicking
// probe never aborts its siblings.
func (d *Dispatcher) Run(urls []string) []probe.Outcome {
	results := make([]probe.Outcome, len(urls))
	if len(urls) == 0 {
		return results
	}

	workers := d.workers
	if workers > len(urls) {
		workers = len(urls)
	}

	tasks := make(chan task)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				// Indices are disjoint, so each worker writes its own slot.
				results[t.index] = d.runOne(t)
				if d.OnResult != nil {
					done := int(completed.Add(1))
					d.OnResult(t.index, t.url, results[t.index], done, len(urls))
				}
			}
		}()
	}

	for i, url := range urls {
		tasks <- task{index: i, url: url}
	}
	close(tasks)
	wg.Wait()

	return results
}

// runOne executes a single probe, converting a panic into an error
// sentinel so one broken task cannot take down the run.
func (d *Dispatcher) runOne(t task) (out probe.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Probe for row %d (%s) panicked: %v", t.index, t.url, r)
			out = probe.ErrorOutcome("panic")
		}
	}()
	return d.checker.Check(t.url)
}
