// Package fs writes crawl reports to disk.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dealie"
)

// ReportName derives a report file name from a seed URL.
// Example: https://shop.test/weekly/deals/ → shop.test-weekly-deals.csv
//
// Schemes other than https prefix the name and a query adds a short hash,
// so http://shop.test/deals and https://shop.test/deals?x=1 get distinct
// names.
func ReportName(seedURL, ext string) (string, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", dealie.Errorf(dealie.EINVALID, "seed URL has no host: %s", seedURL)
	}

	parts := []string{u.Host}
	if u.Scheme != "" && u.Scheme != "https" {
		parts[0] = u.Scheme + "_" + u.Host
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	if u.RawQuery != "" {
		parts = append(parts, fmt.Sprintf("q%08x", uint32(xxhash.Sum64String(u.RawQuery))))
	}
	name := strings.Join(parts, "-")
	name = strings.NewReplacer(":", "_", "?", "_", "*", "_").Replace(name)
	return name + "." + ext, nil
}

// WriteFile renders crawl with exporter into path. The report is written
// to a temporary file in the same directory and renamed into place, so
// readers never see a partial report.
func WriteFile(path string, exporter dealie.Exporter, crawl *dealie.Crawl) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := exporter.Export(tmp, crawl); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Writer writes one report file per crawl into a directory. Seeds that
// map to a name already written by the same Writer get a numeric suffix
// instead of replacing the earlier report.
type Writer struct {
	baseDir  string
	exporter dealie.Exporter
	ext      string

	mu   sync.Mutex
	used map[string]bool
}

// NewWriter creates a Writer that renders crawls with exporter into
// baseDir, naming files with the given extension.
func NewWriter(baseDir string, exporter dealie.Exporter, ext string) *Writer {
	return &Writer{baseDir: baseDir, exporter: exporter, ext: ext, used: make(map[string]bool)}
}

// WriteCrawl writes the crawl's report and returns the file path.
func (w *Writer) WriteCrawl(crawl *dealie.Crawl) (string, error) {
	if err := crawl.Validate(); err != nil {
		return "", err
	}

	name, err := ReportName(crawl.SeedURL, w.ext)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, w.claim(name))
	if err := WriteFile(path, w.exporter, crawl); err != nil {
		return "", err
	}
	return path, nil
}

// claim reserves name for this Writer, adding -2, -3, ... before the
// extension when it is taken.
func (w *Writer) claim(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; w.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	w.used[candidate] = true
	return candidate
}
