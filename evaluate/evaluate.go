// Package evaluate scores a set of records against a set of configured metrics.
//
// Metrics are injected by the caller so new api.Metric implementations work
// without changes here. Records are processed concurrently, metrics for one
// record run in order.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/datar-psa/ragmetrics/api"
	"github.com/datar-psa/ragmetrics/logging"
)

// ErrNothingToEvaluate is returned when no records or no metrics are given
var ErrNothingToEvaluate = errors.New("at least one record and one metric are required")

// Options configures an evaluation run
type Options struct {
	// Concurrency bounds the number of records scored at once, default 4
	Concurrency int
	// FailFast aborts the run on the first metric error
	FailFast bool
	Logger   logging.Logger
}

// Option mutates Options
type Option func(*Options)

// WithConcurrency sets the number of records scored at once
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// WithFailFast makes the first metric error abort the run
func WithFailFast(failFast bool) Option {
	return func(o *Options) {
		o.FailFast = failFast
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Failure records one metric error for one record
type Failure struct {
	RecordIndex int
	Metric      string
	Err         error
}

func (f Failure) Error() string {
	return fmt.Sprintf("record %d: %s: %v", f.RecordIndex, f.Metric, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Summary aggregates one metric across all records
type Summary struct {
	Metric string
	Type   api.MetricType
	// Mean is the average of successful scores, 0 when none succeeded
	Mean   float64
	Count  int
	Failed int
}

// Report is the outcome of an evaluation run
type Report struct {
	ID string
	// Results is indexed by record then metric; failed entries are nil
	Results   [][]*api.MetricResult
	Summaries []Summary
	Failures  []Failure
	Elapsed   time.Duration
}

// Summary returns the summary for the named metric
func (r *Report) Summary(metric string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Metric == metric {
			return s, true
		}
	}
	return Summary{}, false
}

// Evaluate scores every record with every metric.
// With FailFast the first error cancels the run and is returned as a Failure.
// Otherwise failures are collected in the report and the run completes.
func Evaluate(ctx context.Context, records []api.DataRecord, metrics []api.Metric, opts ...Option) (*Report, error) {
	if len(records) == 0 || len(metrics) == 0 {
		return nil, ErrNothingToEvaluate
	}

	options := &Options{Concurrency: 4}
	for _, opt := range opts {
		opt(options)
	}
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	if options.Logger == nil {
		options.Logger = logging.NewDefaultSlogLogger()
	}

	start := time.Now()
	report := &Report{
		ID:      uuid.NewString(),
		Results: make([][]*api.MetricResult, len(records)),
	}
	for i := range report.Results {
		report.Results[i] = make([]*api.MetricResult, len(metrics))
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.Concurrency)

	for i, record := range records {
		g.Go(func() error {
			for j, metric := range metrics {
				if err := gctx.Err(); err != nil {
					return err
				}

				result, err := metric.Score(gctx, record)
				if err != nil {
					failure := Failure{RecordIndex: i, Metric: metric.Name(), Err: err}
					if options.FailFast {
						return failure
					}
					options.Logger.Warn("metric failed, skipping",
						"evaluation_id", report.ID,
						"record", i,
						"metric", metric.Name(),
						"error", err,
					)
					mu.Lock()
					report.Failures = append(report.Failures, failure)
					mu.Unlock()
					continue
				}
				// each (i, j) slot is written by exactly one goroutine
				report.Results[i][j] = result
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Summaries = summarize(report.Results, metrics)
	report.Elapsed = time.Since(start)

	options.Logger.Info("evaluation completed",
		"evaluation_id", report.ID,
		"records", len(records),
		"metrics", len(metrics),
		"failures", len(report.Failures),
		"duration", report.Elapsed,
	)
	return report, nil
}

func summarize(results [][]*api.MetricResult, metrics []api.Metric) []Summary {
	summaries := make([]Summary, len(metrics))
	for j, metric := range metrics {
		s := Summary{Metric: metric.Name(), Type: metric.Type()}
		var sum float64
		for i := range results {
			if r := results[i][j]; r != nil {
				sum += r.Score
				s.Count++
			} else {
				s.Failed++
			}
		}
		if s.Count > 0 {
			s.Mean = sum / float64(s.Count)
		}
		summaries[j] = s
	}
	return summaries
}
