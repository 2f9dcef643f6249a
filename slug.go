package communitysite

import (
	"strconv"
	"strings"
)

// Slugify converts a title to a URL-safe slug: lowercase, alphanumeric runs
// separated by single hyphens, no leading or trailing hyphen. Deterministic
// for identical input; uniqueness is the store's job.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// keepsSlug reports whether an existing slug should survive a title edit.
// A slug equal to the regenerated base stays put so URLs do not churn on
// cosmetic edits, as does a numeric-suffixed variant — but only for suffixes
// collision handling actually generates (2-999). A larger trailing number is
// part of the title, e.g. a year, and the slug follows it when it changes.
func keepsSlug(existing, base string) bool {
	if existing == base {
		return true
	}
	if !strings.HasPrefix(existing, base+"-") {
		return false
	}
	suffix := existing[len(base)+1:]
	if suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(suffix)
	return err == nil && n >= 2 && n <= 999
}
