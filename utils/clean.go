package utils

import (
	"regexp"
	"strings"
)

// whitespace matches the same set of characters as \s in ECMAScript patterns so
// that filenames match the ones produced by the web client.
const whitespace = `\t\n\v\f\r\p{Z}\x{FEFF}`

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w` + whitespace + `-]`)
	whitespaceRun       = regexp.MustCompile(`[` + whitespace + `]+`)
	unsafeDirChars      = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
)

// Sanitize keeps ASCII word characters, whitespace and hyphens, collapses
// whitespace runs to a single space and trims the result.
func Sanitize(input string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(input, "")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

func CleanDirName(input string) string {
	cleaned := unsafeDirChars.ReplaceAllString(input, "_")

	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}
