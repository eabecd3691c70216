package crawler

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// PageCountResolver discovers how many listing pages exist for one date by
// reading the pagination control on page 1. Resolution is best-effort: any
// failure degrades to the fallback count instead of surfacing an error, since
// under-counting only loses trailing pages for a single date.
type PageCountResolver struct {
	fetcher  Fetcher
	selector string
	fallback int
	logger   *zap.Logger
}

// NewPageCountResolver builds a resolver over the given fetch client.
func NewPageCountResolver(fetcher Fetcher, cfg Config, logger *zap.Logger) *PageCountResolver {
	return &PageCountResolver{
		fetcher:  fetcher,
		selector: cfg.PagingSelector,
		fallback: cfg.FallbackPageCount,
		logger:   logger,
	}
}

// Resolve returns the highest page number advertised for date, or the
// fallback when the fetch fails, the body does not parse, or the pagination
// control carries no numeric labels. It never fails the caller.
func (r *PageCountResolver) Resolve(ctx context.Context, date time.Time) int {
	res := r.fetcher.Fetch(ctx, PageRequest{Date: date, Page: 1})
	if res.Outcome != OutcomeSuccess {
		r.logger.Warn("page count resolution failed",
			zap.String("date", date.Format(DateLayout)),
			zap.String("outcome", string(res.Outcome)),
			zap.Error(res.Err),
		)
		return r.fallback
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		r.logger.Warn("page count body did not parse",
			zap.String("date", date.Format(DateLayout)),
			zap.Error(err),
		)
		return r.fallback
	}

	last := 0
	doc.Find(r.selector).Each(func(_ int, s *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(s.Text()))
		if err == nil && n > last {
			last = n
		}
	})
	if last == 0 {
		return r.fallback
	}
	return last
}
