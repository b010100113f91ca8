package service

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every run of non-alphanumerics into a single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// uniqueSlug returns base, or base-N with the smallest N >= 1 not present in taken.
func uniqueSlug(base string, taken []string) string {
	set := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		set[t] = struct{}{}
	}
	if _, ok := set[base]; !ok {
		return base
	}
	for n := 1; ; n++ {
		cand := fmt.Sprintf("%s-%d", base, n)
		if _, ok := set[cand]; !ok {
			return cand
		}
	}
}
