// Package goquery implements dealie.Extractor and dealie.LinkExtractor
// using CSS-style document traversal.
package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dealie"
)

var (
	// pricePattern recognizes currency amounts, ranges, percentage
	// discounts and "save"/"off" phrases. Alternatives are tried in order.
	pricePattern = regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?|\$\d+-\d+|\d+\s*%|(?:save|off)\s+\$?\d+`)

	titleClassPattern = regexp.MustCompile(`(?i)title|heading|name`)

	// noisePattern marks placeholder text that carries no information.
	noisePattern = regexp.MustCompile(`(?i)undefined|promo|deal|offer`)
)

var (
	titleTags       = []string{"h1", "h2", "h3", "h4", "span", "div"}
	priceTags       = []string{"span", "div"}
	descriptionTags = []string{"p", "div"}
	imageAttrs      = []string{"src", "data-src", "data-original"}
)

// Ensure Extractor implements dealie.Extractor at compile time.
var _ dealie.Extractor = (*Extractor)(nil)

// Extractor finds promotions by scanning elements selected by an ordered
// rule table and deriving title, price, description and image signals
// from each one independently.
type Extractor struct {
	// Rules is the ordered rule table. Defaults to DefaultRules.
	Rules []Rule

	// Now returns the capture time stamped on each record.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewExtractor creates an Extractor using DefaultRules and the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{
		Rules: DefaultRules,
		Now:   time.Now,
	}
}

// Extract scans html for promotional content.
func (e *Extractor) Extract(html string, baseURL string) (*dealie.ExtractResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, dealie.Errorf(dealie.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dealie.Errorf(dealie.EEXTRACT, "failed to parse HTML: %v", err)
	}

	date := e.now().Format(dealie.DateFormat)
	result := &dealie.ExtractResult{}

	for _, rule := range e.rules() {
		doc.Find(rule.Tag).Each(func(_ int, sel *goquery.Selection) {
			if !rule.Match(sel) {
				return
			}

			promo, err := extractPromotion(sel, base)
			if err != nil {
				result.Skipped = append(result.Skipped, err)
			}
			promo.Source = baseURL
			promo.Date = date

			if promo.Valid() {
				result.Promotions = append(result.Promotions, promo)
			}
		})
	}

	return result, nil
}

func (e *Extractor) rules() []Rule {
	if e.Rules == nil {
		return DefaultRules
	}
	return e.Rules
}

func (e *Extractor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// extractPromotion derives the four signals of a matched element.
// An unusable image reference leaves Image empty and is reported as the
// error; the other signals are still returned.
func extractPromotion(sel *goquery.Selection, base *url.URL) (*dealie.Promotion, error) {
	image, err := extractImage(sel, base)
	return &dealie.Promotion{
		Title:       extractTitle(sel),
		Price:       extractPrice(sel),
		Description: extractDescription(sel),
		Image:       image,
	}, err
}

// extractTitle returns the text of the first heading-like descendant whose
// class hints at a title. Placeholder text yields an empty title.
func extractTitle(sel *goquery.Selection) string {
	el := firstDescendant(sel, titleTags, func(s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && titleClassPattern.MatchString(class)
	})
	if el.Length() == 0 {
		return ""
	}

	title := strippedText(el)
	if title == "" || noisePattern.MatchString(title) {
		return ""
	}
	return title
}

// extractPrice searches the element's own text first, then each span and
// div below it. The first match wins.
func extractPrice(sel *goquery.Selection) string {
	candidates := append([]*goquery.Selection{sel}, descendants(sel, priceTags)...)
	for _, c := range candidates {
		if m := pricePattern.FindString(c.Text()); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// extractDescription returns the first non-empty paragraph or block text
// that is not placeholder noise.
func extractDescription(sel *goquery.Selection) string {
	var description string
	firstDescendant(sel, descriptionTags, func(s *goquery.Selection) bool {
		text := strippedText(s)
		if text == "" || noisePattern.MatchString(text) {
			return false
		}
		description = text
		return true
	})
	return description
}

// extractImage returns the source of the first img below sel. The first
// present attribute among src, data-src and data-original wins. Relative
// references are resolved against base.
func extractImage(sel *goquery.Selection, base *url.URL) (string, error) {
	img := sel.Find("img").First()
	if img.Length() == 0 {
		return "", nil
	}

	for _, attr := range imageAttrs {
		v, ok := img.Attr(attr)
		if !ok {
			continue
		}
		return resolveImage(base, v)
	}
	return "", nil
}

func resolveImage(base *url.URL, ref string) (string, error) {
	ref = cleanRef(ref)
	if strings.HasPrefix(ref, "//") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", dealie.Errorf(dealie.EEXTRACT, "invalid image reference %q: %v", ref, err)
	}
	if u.Scheme != "" {
		return ref, nil
	}
	return base.ResolveReference(u).String(), nil
}
