package inference

import (
	"regexp"
	"strings"
)

var categoryRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// TagLabels returns the category and tag-name candidates of a title, in that
// order. ok is false when the title has no bracketed category, in which case
// the gallery contributes no labels.
//
// "[Cosplay]Outdoor, Night_Uniform_Alice" yields Cosplay, Outdoor, Night,
// Uniform: the final underscore segment holds performers and is ignored.
func TagLabels(title string) ([]string, bool) {
	match := categoryRe.FindStringSubmatch(title)
	if match == nil {
		return nil, false
	}
	category := match[1]
	labels := []string{category}

	remainder := strings.TrimPrefix(title, "["+category+"]")
	segments := strings.Split(remainder, "_")
	for _, segment := range segments[:len(segments)-1] {
		labels = append(labels, splitNames(segment)...)
	}
	return labels, true
}

// ExclusionPattern builds the server-side regex matching titles whose
// category label is one of categories.
func ExclusionPattern(categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(categories))
	for _, category := range categories {
		quoted = append(quoted, regexp.QuoteMeta(category))
	}
	return `^\[(` + strings.Join(quoted, "|") + `)\]`
}
