package crawler

import (
	"time"
)

// Outcome classifies the result of a single fetch attempt.
type Outcome string

// Outcome values produced by the fetch client and the retrying fetcher.
const (
	OutcomeSuccess        Outcome = "success"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeEmpty          Outcome = "empty"
)

// DateLayout is the wire format for the date URL parameter.
const DateLayout = "20060102"

// PageRequest identifies one listing page: a calendar date plus a 1-based
// page number.
type PageRequest struct {
	Date time.Time
	Page int
}

// FetchResult is the tagged outcome of a single fetch attempt. Body is only
// populated when Outcome is OutcomeSuccess; Err is only populated for
// OutcomeTimeout and OutcomeTransportError.
type FetchResult struct {
	Outcome    Outcome
	StatusCode int
	Body       []byte
	Duration   time.Duration
	Err        error
}

// ExtractFunc pulls headline strings out of a raw listing page body. The
// crawl engine treats the page shape as opaque; callers inject the extractor.
type ExtractFunc func(body []byte) []string
