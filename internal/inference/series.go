package inference

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	platformCodeRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	seriesCodeRe   = regexp.MustCompile(`(?:Vol|No)\.\d+`)
)

// PlatformCode returns the text between the first pair of underscores, e.g.
// "[写真]JVID_AB123_" yields AB123. It fails when that text is not
// alphanumeric; later underscore pairs are never considered.
func PlatformCode(title string) (string, bool) {
	parts := strings.SplitN(title, "_", 3)
	if len(parts) < 3 || !platformCodeRe.MatchString(parts[1]) {
		return "", false
	}
	return parts[1], true
}

// PlatformURL interpolates code into template, which holds one %s.
func PlatformURL(template, code string) string {
	return fmt.Sprintf(template, code)
}

// PrefixPattern builds the server-side regex matching titles that start with
// the literal prefix.
func PrefixPattern(prefix string) string {
	return "^" + regexp.QuoteMeta(prefix)
}

// StudioPattern builds the server-side regex matching titles that begin with
// one of brands, optionally after a leading [category] label. Brands match
// case-sensitively.
func StudioPattern(brands []string) string {
	quoted := make([]string, 0, len(brands))
	for _, brand := range brands {
		quoted = append(quoted, regexp.QuoteMeta(brand))
	}
	return `^(?:\[[^\]]*\])?\s*(?:` + strings.Join(quoted, "|") + `)`
}

// SeriesCode returns the first Vol.<n> or No.<n> token of title.
func SeriesCode(title string) (string, bool) {
	match := seriesCodeRe.FindString(title)
	if match == "" {
		return "", false
	}
	return match, true
}
