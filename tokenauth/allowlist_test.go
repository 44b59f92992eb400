package tokenauth

import "testing"

// TestPathAllowed tests prefix and wildcard matching of public paths
func TestPathAllowed(t *testing.T) {
	allowlist := []string{"/auth/login", "/auth/register", "/health", "/docs/**", "/public/*", " /spaced ", ""}

	tests := []struct {
		path    string
		allowed bool
	}{
		{path: "/auth/login", allowed: true},
		{path: "/auth/login/", allowed: true},
		{path: "/auth/logout", allowed: false},
		{path: "/health", allowed: true},
		{path: "/healthz", allowed: true}, // prefix semantics, matching the gateway convention
		{path: "/docs/openapi.json", allowed: true},
		{path: "/public/img/logo.png", allowed: true},
		{path: "/spaced/page", allowed: true},
		{path: "/api/profile", allowed: false},
		{path: "/", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := pathAllowed(tt.path, allowlist); got != tt.allowed {
				t.Errorf("pathAllowed(%q) = %v, want %v", tt.path, got, tt.allowed)
			}
		})
	}
}

// TestPathAllowedEmptyAllowlist tests that nothing is public by default
func TestPathAllowedEmptyAllowlist(t *testing.T) {
	if pathAllowed("/anything", nil) {
		t.Error("Empty allow-list must not admit any path")
	}
}
