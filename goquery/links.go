package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dealie"
)

// Ensure LinkExtractor implements dealie.LinkExtractor at compile time.
var _ dealie.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor lists every anchor of a page as an absolute URL.
// Scope filtering is left to the crawler.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns resolved hrefs in document order.
// Surrounding whitespace and stray "%" signs are tolerated; hrefs that
// still cannot be parsed are skipped.
func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, dealie.Errorf(dealie.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dealie.Errorf(dealie.EEXTRACT, "failed to parse HTML: %v", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := parseRef(href)
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	return links, nil
}
