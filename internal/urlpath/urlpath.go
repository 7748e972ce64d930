package urlpath

import (
	"net/url"
	"strings"
	"unicode"
)

// Default is the served path substituted when the configured one is unusable.
const Default = "/metrics"

// Normalize turns a caller-supplied path into the canonical form used for
// route matching: whitespace stripped, slash-prefixed, ASCII-lowercased. It is
// total — unusable input falls back to Default. The second return reports
// whether the input itself was usable; callers emit a warning when it is not.
func Normalize(raw string) (string, bool) {
	p := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.ToLower(p)

	// Reject anything the URL-path grammar cannot express: control
	// characters, bad percent-encodings, or query/fragment leftovers.
	u, err := url.Parse(p)
	if err != nil || u.Path != p {
		return Default, false
	}

	return p, true
}

// Match compares a request path against the already-normalized target using
// the same case-insensitive rule Normalize applies. Request paths are not
// re-normalized per request.
func Match(target, requestPath string) bool {
	return strings.EqualFold(target, requestPath)
}
