package tokenauth

import "strings"

// pathAllowed reports whether the request path matches any allow-listed entry.
// Entries are explicit prefixes; a trailing "*" or "**" wildcard is stripped
// before matching, so "/auth/**" and "/auth/" behave the same.
func pathAllowed(path string, allowlist []string) bool {
	for _, pattern := range allowlist {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		p = strings.TrimSuffix(p, "**")
		p = strings.TrimSuffix(p, "*")
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
