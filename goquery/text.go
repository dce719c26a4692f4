package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedText joins the trimmed text nodes under sel with no separator.
// Whitespace-only nodes contribute nothing.
func strippedText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		appendStripped(&b, n)
	}
	return b.String()
}

func appendStripped(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendStripped(b, c)
	}
}

// firstDescendant returns the first descendant of sel, in document order,
// whose tag is one of tags and which satisfies keep.
// The result is empty when nothing matches.
func firstDescendant(sel *goquery.Selection, tags []string, keep func(*goquery.Selection) bool) *goquery.Selection {
	var found *goquery.Selection
	sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !hasTag(s, tags) {
			return true
		}
		if keep != nil && !keep(s) {
			return true
		}
		found = s
		return false
	})
	if found == nil {
		return sel.Slice(0, 0)
	}
	return found
}

// descendants returns every descendant of sel whose tag is one of tags,
// in document order.
func descendants(sel *goquery.Selection, tags []string) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Find("*").Each(func(_ int, s *goquery.Selection) {
		if hasTag(s, tags) {
			out = append(out, s)
		}
	})
	return out
}

func hasTag(s *goquery.Selection, tags []string) bool {
	name := goquery.NodeName(s)
	for _, t := range tags {
		if name == t {
			return true
		}
	}
	return false
}
