package dealie

import (
	"net/url"
	"strings"
)

// ValidateSeedURL returns EINVALID unless raw is an http:// or https:// URL
// with a host.
func ValidateSeedURL(raw string) error {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return Errorf(EINVALID, "please enter a valid URL starting with http:// or https://")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "seed URL %q has no host", raw)
	}
	return nil
}
