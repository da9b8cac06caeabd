package bookmarks

import (
	"net/url"
	"strings"
)

// IsPdf reports whether the path of rawUrl ends in ".pdf", ignoring case. Inputs that do not
// parse as hierarchical URLs (Windows paths, odd characters) are checked as plain strings.
func IsPdf(rawUrl string) bool {
	p := rawUrl
	if parsed, err := url.Parse(rawUrl); err == nil && parsed.Opaque == "" {
		p = parsed.Path
	}
	return strings.HasSuffix(strings.ToLower(p), ".pdf")
}

// Favicon derives "<scheme>://<host>/favicon.ico" from a bookmark URL. It returns "" when the URL
// has no scheme or host.
func Favicon(rawUrl string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawUrl))
	if err != nil || parsed.Scheme == "" || parsed.Hostname() == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Hostname() + "/favicon.ico"
}
