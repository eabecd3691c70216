package crawler

import (
	"sort"
	"sync"
)

// HeadlineSet is a deduplicated set of headline strings. Matching is exact
// (case- and whitespace-sensitive). It is safe for concurrent use: the crawl
// coordinator and every pool worker merge into the same set.
type HeadlineSet struct {
	mu    sync.Mutex
	items map[string]struct{}
}

// NewHeadlineSet returns an empty set.
func NewHeadlineSet() *HeadlineSet {
	return &HeadlineSet{items: make(map[string]struct{})}
}

// Merge unions the given headlines into the set. Merging is idempotent; the
// same string contributed by multiple pages is stored once.
func (s *HeadlineSet) Merge(titles []string) {
	if len(titles) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range titles {
		s.items[t] = struct{}{}
	}
}

// Contains reports whether the set holds the exact headline.
func (s *HeadlineSet) Contains(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[title]
	return ok
}

// Len returns the number of distinct headlines.
func (s *HeadlineSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Slice returns the headlines as a sorted copy. Insertion order carries no
// meaning, so a stable order keeps output and tests deterministic.
func (s *HeadlineSet) Slice() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.items))
	for t := range s.items {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
