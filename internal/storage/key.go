package storage

import "strings"

// KeyPrefixes are the folders uploads are written to. A media URL that starts
// with one of them is an object key owned by this site.
var KeyPrefixes = []string{"photos/", "videos/", "covers/"}

// IsObjectKey reports whether ref is a bare object key rather than an
// external URL.
func IsObjectKey(ref string) bool {
	if ref == "" || strings.Contains(ref, "://") {
		return false
	}
	for _, p := range KeyPrefixes {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}
