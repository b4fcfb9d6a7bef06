package tasks

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// BulkResolveOpts contains configuration for bulk link resolution.
type BulkResolveOpts struct {
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second against the catalog (default: 5)
}

// BulkResolveResult pairs one input URL with its resolution outcome.
type BulkResolveResult struct {
	URL    string
	Result *ResolutionResult
	Err    error
}

// BulkReport summarizes a bulk resolution run.
type BulkReport struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []BulkResolveResult
}

type bulkJob struct {
	index int
	url   string
}

// BulkResolve resolves multiple links concurrently with rate limiting.
//
// A worker pool consumes the URL list while a token-bucket limiter paces
// catalog calls. Individual failures are recorded per URL; the run only
// fails as a whole when the context is cancelled.
func (i *Importer) BulkResolve(ctx context.Context, urls []string, token string, opts BulkResolveOpts) (*BulkReport, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan bulkJob, len(urls))
	results := make([]BulkResolveResult, len(urls))

	var wg sync.WaitGroup
	for w := 0; w < opts.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if err := limiter.Wait(ctx); err != nil {
					results[job.index] = BulkResolveResult{URL: job.url, Err: err}
					continue
				}

				result, err := i.ResolveImport(ctx, job.url, token)
				results[job.index] = BulkResolveResult{URL: job.url, Result: result, Err: err}
			}
		}()
	}

	for idx, url := range urls {
		jobs <- bulkJob{index: idx, url: url}
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &BulkReport{Total: len(urls), Results: results}
	for _, res := range results {
		if res.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	return report, nil
}
