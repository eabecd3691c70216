package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine coordinates a crawl over an inclusive date range. For each date it
// fetches page 1 inline, resolves the page count from that date's pagination
// control, and fans pages 2..last out to a bounded worker pool. All results
// merge into one deduplicated HeadlineSet.
type Engine struct {
	cfg      Config
	fetcher  Fetcher
	resolver *PageCountResolver
	logger   *zap.Logger
}

// NewEngine constructs an Engine from its collaborators.
func NewEngine(cfg Config, fetcher Fetcher, resolver *PageCountResolver, logger *zap.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		fetcher:  fetcher,
		resolver: resolver,
		logger:   logger,
	}
}

// New builds an Engine wired to the production Colly fetcher.
func New(cfg Config, logger *zap.Logger) *Engine {
	fetcher := NewCollyFetcher(cfg, logger)
	return NewEngine(cfg, fetcher, NewPageCountResolver(fetcher, cfg, logger), logger)
}

// Run crawls every date in [start, end] and returns the deduplicated set of
// headlines. Per-page failures are retried, then logged and dropped; a date
// whose first page dies is skipped whole. The run itself only fails on bad
// arguments or context cancellation — and on cancellation the set collected
// so far is still returned alongside the error.
func (e *Engine) Run(ctx context.Context, start, end time.Time, extract ExtractFunc) (*HeadlineSet, error) {
	if extract == nil {
		return nil, fmt.Errorf("extract function must not be nil")
	}
	start, end = day(start), day(end)
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s",
			start.Format(DateLayout), end.Format(DateLayout))
	}

	set := NewHeadlineSet()
	retrier := NewRetryingFetcher(e.fetcher, extract, e.cfg, e.logger)

	workers := e.cfg.PoolSize()
	// The task channel is sized to the pool, so in-flight submissions stay
	// bounded by pool size rather than by total page count.
	tasks := make(chan PageRequest, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range tasks {
				if ctx.Err() != nil {
					continue
				}
				inFlightFetches.Inc()
				titles := retrier.FetchHeadlines(ctx, req)
				inFlightFetches.Dec()
				set.Merge(titles)
			}
		}()
	}

	e.logger.Info("starting crawl",
		zap.String("start", start.Format(DateLayout)),
		zap.String("end", end.Format(DateLayout)),
		zap.Int("workers", workers),
	)

dates:
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			break
		}
		dateField := zap.String("date", cursor.Format(DateLayout))
		e.logger.Info("crawling date", dateField)

		// Page 1 runs inline: its headlines count, and its success gates the
		// rest of the date. A dead first page skips page-count resolution and
		// pages >= 2 entirely so one bad date cannot stall the range.
		first := retrier.FetchHeadlines(ctx, PageRequest{Date: cursor, Page: 1})
		if first == nil {
			e.logger.Warn("first page yielded nothing, skipping date", dateField)
			continue
		}
		set.Merge(first)

		lastPage := e.resolver.Resolve(ctx, cursor)
		for page := 2; page <= lastPage; page++ {
			select {
			case tasks <- PageRequest{Date: cursor, Page: page}:
			case <-ctx.Done():
				break dates
			}
		}
	}

	close(tasks)
	wg.Wait()

	e.logger.Info("crawl finished", zap.Int("headlines", set.Len()))
	if err := ctx.Err(); err != nil {
		return set, fmt.Errorf("crawl interrupted: %w", err)
	}
	return set, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
