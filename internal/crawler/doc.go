// Package crawler implements the date/page crawling engine: page-count
// discovery, bounded-concurrency fetch-and-extract with retry, and
// aggregation of headlines into a deduplicated set.
package crawler
