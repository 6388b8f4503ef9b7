package guard

import "strings"

// excludedPrefixes are never evaluated by the guard: API routes carry their
// own auth, and static assets are served without a session check.
var excludedPrefixes = []string{
	"/api",
	"/_next/static",
	"/_next/image",
	"/favicon.ico",
	"/static",
}

// Excluded reports whether path bypasses the guard entirely. Like a
// negative-lookahead route matcher it compares prefixes only, so "/apis"
// is excluded too.
func Excluded(path string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
