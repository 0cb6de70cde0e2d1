package inference

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TitleFromSources derives a gallery title from its folder path, or failing
// that from the first attached file with its final extension removed. Both
// slash styles are accepted since the host may run on Windows.
func TitleFromSources(folderPath string, fileBasenames []string) (string, bool) {
	if title, ok := lastPathSegment(folderPath); ok {
		return norm.NFC.String(title), true
	}
	if len(fileBasenames) == 0 {
		return "", false
	}
	base, ok := lastPathSegment(fileBasenames[0])
	if !ok {
		return "", false
	}
	title := strings.TrimSuffix(base, path.Ext(base))
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	return norm.NFC.String(title), true
}

func lastPathSegment(p string) (string, bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(p), `/\`)
	if trimmed == "" {
		return "", false
	}
	if idx := strings.LastIndexAny(trimmed, `/\`); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
