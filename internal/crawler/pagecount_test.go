package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubFetcher returns a scripted FetchResult per (date, page) key and records
// every request it sees.
type stubFetcher struct {
	mu      sync.Mutex
	results map[string]FetchResult
	calls   []PageRequest
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{results: make(map[string]FetchResult)}
}

func pageKey(req PageRequest) string {
	return fmt.Sprintf("%s:%d", req.Date.Format(DateLayout), req.Page)
}

func (f *stubFetcher) set(date time.Time, page int, res FetchResult) {
	f.results[pageKey(PageRequest{Date: date, Page: page})] = res
}

func (f *stubFetcher) Fetch(_ context.Context, req PageRequest) FetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if res, ok := f.results[pageKey(req)]; ok {
		return res
	}
	return FetchResult{Outcome: OutcomeTransportError, Err: errors.New("unscripted request")}
}

func (f *stubFetcher) requests() []PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PageRequest(nil), f.calls...)
}

var testDate = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func pagingBody(labels ...string) []byte {
	body := `<div class="paging">`
	for _, l := range labels {
		body += fmt.Sprintf(`<a href="#">%s</a>`, l)
	}
	return []byte(body + `</div>`)
}

func TestResolveReturnsMaxNumericLabel(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.set(testDate, 1, FetchResult{
		Outcome: OutcomeSuccess,
		Body:    pagingBody("2", "4", "7", "3"),
	})
	resolver := NewPageCountResolver(fetcher, DefaultConfig(), zap.NewNop())

	require.Equal(t, 7, resolver.Resolve(context.Background(), testDate))
}

func TestResolveIgnoresNonNumericLabels(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.set(testDate, 1, FetchResult{
		Outcome: OutcomeSuccess,
		Body:    pagingBody("이전", "2", "3", "다음"),
	})
	resolver := NewPageCountResolver(fetcher, DefaultConfig(), zap.NewNop())

	require.Equal(t, 3, resolver.Resolve(context.Background(), testDate))
}

func TestResolveFallsBackWithoutNumericLabels(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.set(testDate, 1, FetchResult{
		Outcome: OutcomeSuccess,
		Body:    pagingBody("이전", "다음"),
	})
	resolver := NewPageCountResolver(fetcher, DefaultConfig(), zap.NewNop())

	require.Equal(t, DefaultFallbackPageCount, resolver.Resolve(context.Background(), testDate))
}

func TestResolveFallsBackOnFetchFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  FetchResult
	}{
		{"timeout", FetchResult{Outcome: OutcomeTimeout, Err: errors.New("deadline")}},
		{"transport error", FetchResult{Outcome: OutcomeTransportError, StatusCode: 500, Err: errors.New("boom")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fetcher := newStubFetcher()
			fetcher.set(testDate, 1, tc.res)
			resolver := NewPageCountResolver(fetcher, DefaultConfig(), zap.NewNop())

			require.Equal(t, DefaultFallbackPageCount, resolver.Resolve(context.Background(), testDate))
			require.Len(t, fetcher.requests(), 1)
		})
	}
}

func TestResolveFetchesPageOneOnly(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	fetcher.set(testDate, 1, FetchResult{Outcome: OutcomeSuccess, Body: pagingBody("2")})
	resolver := NewPageCountResolver(fetcher, DefaultConfig(), zap.NewNop())
	resolver.Resolve(context.Background(), testDate)

	reqs := fetcher.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, 1, reqs[0].Page)
}
