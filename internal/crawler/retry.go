package crawler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryingFetcher wraps a Fetcher with a bounded retry budget and runs the
// injected extractor over successful bodies. A fixed delay separates
// attempts; there is no exponential growth because the budget is tiny and the
// target is a single origin.
type RetryingFetcher struct {
	fetcher     Fetcher
	extract     ExtractFunc
	maxAttempts int
	backoff     time.Duration
	wait        func(ctx context.Context, d time.Duration) bool
	logger      *zap.Logger
}

// NewRetryingFetcher builds a retrying fetcher for one crawl run.
func NewRetryingFetcher(fetcher Fetcher, extract ExtractFunc, cfg Config, logger *zap.Logger) *RetryingFetcher {
	return &RetryingFetcher{
		fetcher:     fetcher,
		extract:     extract,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.RetryBackoff,
		wait:        waitBackoff,
		logger:      logger,
	}
}

// waitBackoff blocks for the backoff interval, returning false early when ctx
// is canceled so a worker never sits out a delay nobody will consume.
func waitBackoff(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// FetchHeadlines fetches one page and extracts its headlines, retrying
// timeouts and transport failures up to the attempt budget. It returns nil
// when extraction finds nothing (an empty page is not an error) and nil after
// the budget is exhausted (the page is reported and dropped, never fatal).
func (r *RetryingFetcher) FetchHeadlines(ctx context.Context, req PageRequest) []string {
	fields := []zap.Field{
		zap.String("date", req.Date.Format(DateLayout)),
		zap.Int("page", req.Page),
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}
		if attempt > 1 {
			retriesTotal.Inc()
		}

		res := r.fetcher.Fetch(ctx, req)
		switch res.Outcome {
		case OutcomeSuccess:
			titles := r.extract(res.Body)
			if len(titles) == 0 {
				fetchAttemptsTotal.WithLabelValues(string(OutcomeEmpty)).Inc()
				r.logger.Debug("page yielded no headlines", fields...)
				return nil
			}
			fetchAttemptsTotal.WithLabelValues(string(OutcomeSuccess)).Inc()
			headlinesTotal.Add(float64(len(titles)))
			return titles
		case OutcomeTimeout:
			fetchAttemptsTotal.WithLabelValues(string(OutcomeTimeout)).Inc()
			r.logger.Warn("fetch timed out", append(fields,
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", r.maxAttempts),
			)...)
		default:
			fetchAttemptsTotal.WithLabelValues(string(OutcomeTransportError)).Inc()
			r.logger.Warn("fetch failed", append(fields,
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", r.maxAttempts),
				zap.Int("status_code", res.StatusCode),
				zap.Error(res.Err),
			)...)
		}

		if attempt < r.maxAttempts {
			if !r.wait(ctx, r.backoff) {
				return nil
			}
		}
	}

	pagesDroppedTotal.Inc()
	r.logger.Error("retry budget exhausted, dropping page", fields...)
	return nil
}
