// Package slug maps organization display names to storage-safe identifiers.
package slug

import (
	"strings"
)

// Make converts a display name into a storage-safe identifier: lowercase,
// surrounding whitespace trimmed, every run of characters outside [a-z0-9]
// collapsed into a single underscore, leading and trailing underscores
// stripped. Deterministic; distinct names may collide.
func Make(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}
