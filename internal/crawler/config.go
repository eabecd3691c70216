package crawler

import (
	"fmt"
	"runtime"
	"time"
)

// Defaults for the crawl engine. Kept as named constants so runs stay
// reproducible and tests can reference the same values.
const (
	// DefaultBaseURL is the listing URL template; the first verb takes the
	// YYYYMMDD date, the second the 1-based page number.
	DefaultBaseURL = "https://news.naver.com/main/list.naver?mode=LSD&mid=sec&sid1=101&date=%s&page=%d"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0"

	// DefaultRequestTimeout bounds a single fetch attempt.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultMaxAttempts is the per-page retry budget.
	DefaultMaxAttempts = 3

	// DefaultRetryBackoff is the fixed delay between attempts. The backoff is
	// intentionally flat rather than exponential: pages are cheap and the
	// budget is small, so ramping delays buys nothing.
	DefaultRetryBackoff = 1 * time.Second

	// DefaultFallbackPageCount is assumed for a date when page-count
	// resolution fails or finds no numeric pagination labels.
	DefaultFallbackPageCount = 5

	// DefaultWorkerCap bounds the fetch pool regardless of available CPUs.
	DefaultWorkerCap = 10

	// DefaultPagingSelector locates the pagination control on page 1.
	DefaultPagingSelector = ".paging a"

	// defaultWorkerFloor is used when the CPU count cannot be determined.
	defaultWorkerFloor = 4
)

// Config holds the settings for a crawl session. The struct is decoupled from
// Viper so the engine can be constructed and tested independently of how the
// process loads configuration.
type Config struct {
	BaseURL           string
	UserAgent         string
	RequestTimeout    time.Duration
	MaxAttempts       int
	RetryBackoff      time.Duration
	FallbackPageCount int
	PagingSelector    string
	// Workers overrides the pool size when > 0; otherwise the size derives
	// from the CPU count, capped by WorkerCap.
	Workers   int
	WorkerCap int
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		RequestTimeout:    DefaultRequestTimeout,
		MaxAttempts:       DefaultMaxAttempts,
		RetryBackoff:      DefaultRetryBackoff,
		FallbackPageCount: DefaultFallbackPageCount,
		PagingSelector:    DefaultPagingSelector,
		WorkerCap:         DefaultWorkerCap,
	}
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("crawler base_url must be set")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("crawler user_agent must be set")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("crawler request_timeout must be > 0")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("crawler max_attempts must be > 0")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("crawler retry_backoff must be >= 0")
	}
	if c.FallbackPageCount < 1 {
		return fmt.Errorf("crawler fallback_page_count must be >= 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("crawler workers must be >= 0")
	}
	if c.WorkerCap <= 0 {
		return fmt.Errorf("crawler worker_cap must be > 0")
	}
	return nil
}

// PageURL renders the listing URL for one date/page pair.
func (c Config) PageURL(date time.Time, page int) string {
	return fmt.Sprintf(c.BaseURL, date.Format(DateLayout), page)
}

// PoolSize computes the number of concurrent fetch workers: the explicit
// override if set, otherwise the CPU count, always capped by WorkerCap.
func (c Config) PoolSize() int {
	n := c.Workers
	if n == 0 {
		n = runtime.NumCPU()
		if n <= 0 {
			n = defaultWorkerFloor
		}
	}
	if n > c.WorkerCap {
		n = c.WorkerCap
	}
	return n
}
