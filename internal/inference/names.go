package inference

import (
	"slices"
	"strings"
)

// PerformerCandidates splits the final underscore-delimited title segment on
// commas. Blank names are dropped.
func PerformerCandidates(title string) []string {
	segments := strings.Split(title, "_")
	return splitNames(segments[len(segments)-1])
}

func splitNames(segment string) []string {
	var names []string
	for _, part := range strings.Split(segment, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MatchesName reports whether candidate equals name or one of aliases exactly.
func MatchesName(candidate, name string, aliases []string) bool {
	return candidate == name || slices.Contains(aliases, candidate)
}
