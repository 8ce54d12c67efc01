package service

import "strings"

// slugify derives a URL slug from a display name: lower-cased ASCII
// letters and digits, runs of anything else collapsed to single dashes.
func slugify(name string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}

	return b.String()
}
