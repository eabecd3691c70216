package crawler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher implements Fetcher using the Colly collector. A base collector
// carries the shared transport and user agent; every Fetch works on a clone so
// callbacks never leak between requests.
type CollyFetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg Config, logger *zap.Logger) *CollyFetcher {
	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	// The retrying fetcher revisits the same URL on every attempt.
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.SetRequestTimeout(cfg.RequestTimeout)
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
		ForceAttemptHTTP2:     true,
	})
	return &CollyFetcher{
		cfg:           cfg,
		baseCollector: base,
		logger:        logger,
	}
}

// Fetch executes a single HTTP GET for the requested date/page. It never
// retries; transport failures and timeouts come back as tagged outcomes.
// When ctx expires before the request completes, Fetch returns immediately
// and the abandoned request finishes in the background.
func (f *CollyFetcher) Fetch(ctx context.Context, req PageRequest) FetchResult {
	start := time.Now()
	url := f.cfg.PageURL(req.Date, req.Page)

	// The visiting goroutine owns its result end to end and hands a complete
	// value over the channel. Nothing is shared, so an abandoned visit can
	// keep running without racing the caller. Buffered so it never blocks.
	results := make(chan FetchResult, 1)
	go func() {
		var result FetchResult
		collector := f.baseCollector.Clone()
		collector.OnResponse(func(r *colly.Response) {
			result = FetchResult{
				Outcome:    OutcomeSuccess,
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
			}
		})
		collector.OnError(func(r *colly.Response, err error) {
			status := 0
			if r != nil {
				status = r.StatusCode
			}
			result = classifyFetchError(status, err)
		})

		err := collector.Visit(url)
		// OnError has already classified most failures, with the status code
		// attached. Visit only adds information when no callback ran at all.
		if err != nil && result.Outcome == "" {
			result = classifyFetchError(0, err)
		}
		if result.Outcome == "" {
			result = classifyFetchError(0, errors.New("collector produced no response"))
		}
		results <- result
	}()

	var result FetchResult
	select {
	case <-ctx.Done():
		result = classifyFetchError(0, ctx.Err())
	case result = <-results:
	}
	result.Duration = time.Since(start)
	return result
}

// classifyFetchError maps transport-level failures onto the outcome taxonomy:
// deadline and net timeouts become OutcomeTimeout, everything else (including
// non-2xx statuses surfaced by Colly) becomes OutcomeTransportError.
func classifyFetchError(status int, err error) FetchResult {
	outcome := OutcomeTransportError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		outcome = OutcomeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		outcome = OutcomeTimeout
	}
	return FetchResult{Outcome: outcome, StatusCode: status, Err: err}
}
