package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Rule selects candidate elements by tag name and an attribute pattern.
// The pattern is searched within the attribute value, so "deal" matches
// class="deal-card hero".
type Rule struct {
	Tag     string
	Attr    string
	Pattern *regexp.Regexp
}

// Match reports whether sel has the rule's attribute and the value
// matches the pattern.
func (r Rule) Match(sel *goquery.Selection) bool {
	v, ok := sel.Attr(r.Attr)
	if !ok {
		return false
	}
	return r.Pattern.MatchString(v)
}

// DefaultRules is the ordered rule table used by NewExtractor.
// Elements are visited rule by rule; an element matching several rules is
// scanned once for each.
var DefaultRules = []Rule{
	{Tag: "div", Attr: "class", Pattern: regexp.MustCompile(`(?i)promo|deal|offer|special|banner|price`)},
	{Tag: "section", Attr: "id", Pattern: regexp.MustCompile(`(?i)specials|offers|deals|price`)},
	{Tag: "li", Attr: "class", Pattern: regexp.MustCompile(`(?i)menu-item|product|item|price`)},
	{Tag: "article", Attr: "class", Pattern: regexp.MustCompile(`(?i)card|offer|promotion|price`)},
	{Tag: "tr", Attr: "class", Pattern: regexp.MustCompile(`(?i)deal|offer|price`)},
	{Tag: "a", Attr: "href", Pattern: regexp.MustCompile(`(?i)/deals|/offers|/promotions|/price`)},
}
