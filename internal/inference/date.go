package inference

import (
	"regexp"
	"strings"
)

// DatePattern is the server-side filter used to select titles carrying a date.
const DatePattern = `\d{4}\.\d{2}\.\d{2}`

var dateRe = regexp.MustCompile(DatePattern)

// ExtractDate returns the first YYYY.MM.DD substring of title as YYYY-MM-DD.
func ExtractDate(title string) (string, bool) {
	match := dateRe.FindString(title)
	if match == "" {
		return "", false
	}
	return strings.ReplaceAll(match, ".", "-"), true
}
