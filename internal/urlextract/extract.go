// Package urlextract discovers article URLs embedded in converted PDF
// text. PDF-to-text conversion injects trailing punctuation and
// link-annotation metadata next to real URLs, so every candidate goes
// through a fixed stripping sequence before it is accepted. Purely
// lexical; nothing is fetched.
package urlextract

import (
	"regexp"
	"strings"
)

// urlPattern matches http(s) schemes followed by a deliberately
// permissive character class: URL-safe punctuation and percent
// escapes. Over-matching is fine because cleanup trims the artifacts.
var urlPattern = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// annotationMarker terminates URLs glued to PDF link-annotation
// metadata by the converter.
const annotationMarker = "external-destination="

// Extract returns the clean URLs found in text, first-seen order,
// duplicates removed. Candidates still carrying brackets, quotes, or
// non-printable characters after cleanup are dropped rather than
// repaired further.
func Extract(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	var urls []string
	seen := make(map[string]struct{}, len(matches))
	for _, raw := range matches {
		url := clean(raw)
		if !valid(url) {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	return urls
}

// clean strips trailing artifacts in a fixed order. Conservative on
// purpose: legitimate query strings rarely contain any of these
// characters, and truncating too eagerly loses real URLs.
func clean(url string) string {
	if i := strings.Index(url, ")"); i >= 0 {
		url = url[:i]
	}
	if i := strings.Index(url, "]"); i >= 0 {
		url = url[:i]
	}
	if i := strings.IndexAny(url, `"']`); i >= 0 {
		url = url[:i]
	}
	if i := strings.Index(url, annotationMarker); i >= 0 {
		url = url[:i]
	}
	return strings.TrimSpace(url)
}

func valid(url string) bool {
	if url == "" {
		return false
	}
	if strings.ContainsAny(url, "[]()\"'") {
		return false
	}
	for _, r := range url {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
