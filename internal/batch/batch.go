// Package batch normalizes many analytics documents concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"linkstats/internal/analytics"
	"linkstats/internal/enrich"
	"linkstats/internal/pkg/async"
)

// Input is one named document, typically a file path and its decoded body.
type Input struct {
	Name string
	Doc  any
}

// Options controls a Run.
type Options struct {
	Workers  int
	Enricher *enrich.Enricher // optional
	Logger   *slog.Logger
}

// Result pairs an input name with its normalized report. Err is only set
// when the run was cancelled before the document was processed.
type Result struct {
	Name   string
	Report analytics.Report
	Err    error
}

// Run normalizes inputs on opts.Workers goroutines and returns one Result per
// input, in input order.
func Run(ctx context.Context, inputs []Input, opts Options) []Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tasks := make([]async.Task[analytics.Report], len(inputs))
	for i, in := range inputs {
		doc := in.Doc
		tasks[i] = async.Task[analytics.Report]{
			Name: taskName(i, in.Name),
			Execute: func(ctx context.Context) (analytics.Report, error) {
				report := analytics.Normalize(doc)
				if opts.Enricher != nil {
					opts.Enricher.Apply(&report)
				}
				return report, nil
			},
		}
	}

	start := time.Now()
	done := async.NewPool[analytics.Report](opts.Workers).Execute(ctx, tasks)

	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i].Name = in.Name
		res, ok := done[taskName(i, in.Name)]
		if !ok {
			results[i].Err = fmt.Errorf("normalize %s: %w", in.Name, context.Cause(ctx))
			continue
		}
		results[i].Report = res.Data
		results[i].Err = res.Err
	}

	logger.Debug("Batch normalized",
		slog.Int("documents", len(inputs)),
		slog.Int("completed", len(done)),
		slog.Duration("elapsed", time.Since(start)))

	return results
}

// Names may repeat (several "-" inputs), so tasks are keyed by position too.
func taskName(i int, name string) string {
	return fmt.Sprintf("%d:%s", i, name)
}
