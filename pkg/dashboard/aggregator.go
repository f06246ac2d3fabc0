package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/upstream"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const CriticalFailureMessage = "Could not load the dashboard. Please try again."

// Result is the settled outcome of one aggregator fetch.
type Result struct {
	Data Data `json:"data"`
	// Loading is keyed by loading key and is all false once Fetch returns.
	Loading map[string]bool `json:"loading"`
	// Errors holds the message of every failed source, keyed by source name.
	Errors   map[SourceName]string `json:"errors"`
	Critical string                `json:"critical,omitempty"`
}

// Failed returns the error message of source when it failed.
func (r Result) Failed(source SourceName) (string, bool) {
	msg, ok := r.Errors[source]
	return msg, ok
}

// IsCritical reports the baseline result of a fetch that panicked.
func (r Result) IsCritical() bool {
	return r.Critical != ""
}

// Aggregator fetches every dashboard source of the current user in parallel.
type Aggregator struct {
	sources        []Source
	sourceTimeout  time.Duration
	maxConcurrency int
}

// NewAggregator runs sources with the timeout and concurrency limit of cfg.
func NewAggregator(sources []Source, cfg config.Dashboard) *Aggregator {
	return &Aggregator{
		sources:        sources,
		sourceTimeout:  cfg.SourceTimeout,
		maxConcurrency: cfg.MaxConcurrency,
	}
}

// Fetch runs every source concurrently and waits until all of them settled.
// A failing source never cancels its siblings, it only fills Errors. A panic
// in any source discards everything and returns the critical baseline.
func (a *Aggregator) Fetch(ctx context.Context) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("dashboard fetch panicked: %v", r)
			result = a.baseline(CriticalFailureMessage)
		}
	}()

	var (
		data     Data
		mu       sync.Mutex
		errs     = map[SourceName]string{}
		panicked atomic.Bool
		g        errgroup.Group
	)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	started := time.Now()
	for _, src := range a.sources {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("dashboard source %s panicked: %v", src.Name, r)
					panicked.Store(true)
				}
			}()

			sourceCtx, cancel := a.sourceContext(ctx)
			defer cancel()

			if err := src.Fetch(sourceCtx, &data); err != nil {
				log.WithFields(log.Fields{
					"source": src.Name,
					"error":  err,
				}).Warn("dashboard source failed")
				mu.Lock()
				errs[src.Name] = errorMessage(err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if panicked.Load() {
		return a.baseline(CriticalFailureMessage)
	}

	result = a.baseline("")
	result.Data = data
	result.Errors = errs
	log.Debugf("dashboard fetch settled in %s with %d/%d failed sources", time.Since(started), len(errs), len(a.sources))
	return result
}

func (a *Aggregator) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.sourceTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.sourceTimeout)
}

// baseline is an empty result with every loading flag cleared.
func (a *Aggregator) baseline(critical string) Result {
	loading := make(map[string]bool, len(a.sources))
	for _, src := range a.sources {
		loading[src.LoadingKey] = false
	}
	return Result{
		Loading:  loading,
		Errors:   map[SourceName]string{},
		Critical: critical,
	}
}

// errorMessage is the text shown next to a failed widget.
func errorMessage(err error) string {
	var apiErr *upstream.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return fmt.Sprint(err)
	}
}
