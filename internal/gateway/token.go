package gateway

import (
	"net/http"
	"strings"
)

// CookieValue scans a raw semicolon-separated cookie string (the form the
// browser keeps in document.cookie) and returns the value stored under name,
// or "" when absent. Entries may carry arbitrary surrounding whitespace.
func CookieValue(raw, name string) string {
	if raw == "" {
		return ""
	}
	prefix := name + "="
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if strings.HasPrefix(entry, prefix) {
			return entry[len(prefix):]
		}
	}
	return ""
}

// parseCookies converts a raw cookie string into http.Cookie values suitable
// for seeding a jar. Malformed entries (no '=') are skipped.
func parseCookies(raw string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return cookies
}
