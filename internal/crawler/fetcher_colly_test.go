package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServerConfig(t *testing.T, handler http.HandlerFunc) (Config, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL + "/list?date=%s&page=%d"
	return cfg, server
}

func TestCollyFetcherSuccess(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("<html>listing</html>"))
	})
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	res := fetcher.Fetch(context.Background(), PageRequest{Date: testDate, Page: 3})

	require.Equal(t, OutcomeSuccess, res.Outcome)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "<html>listing</html>", string(res.Body))
	require.NoError(t, res.Err)
	require.Equal(t, "20250201", gotQuery.Get("date"))
	require.Equal(t, "3", gotQuery.Get("page"))
}

func TestCollyFetcherServerError(t *testing.T) {
	t.Parallel()

	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	res := fetcher.Fetch(context.Background(), PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeTransportError, res.Outcome)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Error(t, res.Err)
}

func TestCollyFetcherTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Write([]byte("late"))
	})
	t.Cleanup(func() { close(release) })
	cfg.RequestTimeout = 50 * time.Millisecond
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	res := fetcher.Fetch(context.Background(), PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeTimeout, res.Outcome)
	require.Error(t, res.Err)
}

func TestCollyFetcherDeadlineMidFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Write([]byte("late"))
	})
	t.Cleanup(func() { close(release) })
	// The request timeout sits far above the context deadline, so the
	// context fires while the server still holds the request open.
	cfg.RequestTimeout = 5 * time.Second
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := fetcher.Fetch(ctx, PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeTimeout, res.Outcome)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestCollyFetcherCanceledMidFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.Write([]byte("late"))
	})
	t.Cleanup(func() { close(release) })
	cfg.RequestTimeout = 5 * time.Second
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res := fetcher.Fetch(ctx, PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeTransportError, res.Outcome)
	require.ErrorIs(t, res.Err, context.Canceled)
}

func TestCollyFetcherUnreachableHost(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	// A closed port on localhost refuses the connection outright.
	cfg.BaseURL = "http://127.0.0.1:1/list?date=%s&page=%d"
	cfg.RequestTimeout = time.Second
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	res := fetcher.Fetch(context.Background(), PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeTransportError, res.Outcome)
	require.Error(t, res.Err)
}

func TestCollyFetcherSendsConfiguredUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	cfg, _ := newServerConfig(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	})
	cfg.UserAgent = "headline-crawler-test/1.0"
	fetcher := NewCollyFetcher(cfg, zap.NewNop())

	res := fetcher.Fetch(context.Background(), PageRequest{Date: testDate, Page: 1})

	require.Equal(t, OutcomeSuccess, res.Outcome)
	require.Equal(t, "headline-crawler-test/1.0", gotAgent)
}

func TestClassifyFetchError(t *testing.T) {
	t.Parallel()

	res := classifyFetchError(0, context.DeadlineExceeded)
	require.Equal(t, OutcomeTimeout, res.Outcome)

	res = classifyFetchError(502, context.Canceled)
	require.Equal(t, OutcomeTransportError, res.Outcome)
	require.Equal(t, 502, res.StatusCode)
}
