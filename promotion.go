package dealie

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DateFormat is the layout of Promotion.Date.
const DateFormat = "2006-01-02"

// Promotion is a single promotional record found on a page.
// Price is kept as the raw matched text ("$10.99", "20%", "save $5").
type Promotion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Source      string `json:"source"`
	Date        string `json:"date"`
}

// Valid reports whether the promotion carries enough signal to be kept:
// a price, or both a title and a description.
func (p *Promotion) Valid() bool {
	return p.Price != "" || (p.Title != "" && p.Description != "")
}

// Fingerprint returns a stable hash of all fields.
// Records with identical content share a fingerprint.
func (p *Promotion) Fingerprint() string {
	d := xxhash.New()
	for _, field := range []string{p.Title, p.Description, p.Price, p.Image, p.Source, p.Date} {
		_, _ = d.WriteString(field)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// UniquePromotions returns promotions with exact duplicates removed,
// keeping the first occurrence of each fingerprint.
func UniquePromotions(promotions []*Promotion) []*Promotion {
	seen := make(map[string]struct{}, len(promotions))
	out := make([]*Promotion, 0, len(promotions))
	for _, p := range promotions {
		fp := p.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, p)
	}
	return out
}
