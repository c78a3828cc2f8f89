package catalog

import "strings"

// Slugify derives a URL slug from a product title. Runs of non-alphanumeric
// characters collapse into a single hyphen, the result is lower-cased and
// trimmed of leading/trailing hyphens. Applying it to its own output is a
// no-op, so re-importing a title never shifts its permalink.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r + ('a' - 'A'))
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
