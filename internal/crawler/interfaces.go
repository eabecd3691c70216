package crawler

import (
	"context"
)

// Fetcher performs a single timed GET for one listing page. Implementations
// never retry; the retrying fetcher owns the attempt budget.
type Fetcher interface {
	Fetch(ctx context.Context, req PageRequest) FetchResult
}
