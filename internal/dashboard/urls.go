package dashboard

import (
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// NormalizeURL trims surrounding whitespace and prepends https:// when the
// URL has no scheme. An empty input stays empty.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !schemePattern.MatchString(url) {
		url = "https://" + url
	}
	return url
}
