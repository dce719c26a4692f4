// Package dealie crawls a site from a seed URL and extracts promotion
// records (title, price, description, image) from arbitrary HTML using
// structural and textual heuristics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, bloom/).
package dealie
