package crawler

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// naverHeadlineSelector matches headline anchors in the economy section
// listing, skipping the photo-card entries that duplicate titles.
const naverHeadlineSelector = ".list_body.newsflash_body li dt:not(.photo) a"

// NaverHeadlines extracts headline strings from a Naver news listing page.
// It is the default ExtractFunc; the engine accepts any replacement, so the
// crawl loop stays ignorant of HTML shape.
func NaverHeadlines(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var titles []string
	doc.Find(naverHeadlineSelector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			titles = append(titles, t)
		}
	})
	return titles
}
